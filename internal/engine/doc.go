// Package engine связывает разбор, сортировку, форматирование и сравнение текстов.
//
// Transform чистая функция: не читает и не пишет файлы, не держит состояния
// между вызовами. Решение печатать, писать или только сообщать принимает вызывающий.
package engine
