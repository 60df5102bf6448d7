// Package sorter переставляет таблицы и записи документа.
//
// Назначение:
//   - порядок таблиц по TableOrder (стабильно, дубликаты не схлопываются)
//   - сортировка записей сортируемых таблиц и подтаблиц [dependencies.x]
//   - группы записей, разделённые пустыми строками или сменой класса
//
// Не делает:
//   - не меняет текст ключей и значений (кроме правил InlineOrderer)
//   - не форматирует (см. internal/format)
//
// Зависимости: internal/document, internal/match.
package sorter
