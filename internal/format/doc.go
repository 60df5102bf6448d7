// Package format canonicalizes the presentation of a parsed manifest in
// place: whitespace, quoting, array layout, blank lines and line endings.
//
// Назначение: каноничный вид документа после сортировки; повторный прогон ничего не меняет.
// Не делает: не переставляет записи и таблицы, не трогает ключи и значения по смыслу.
// Зависимости: internal/document, github.com/mattn/go-runewidth.
package format
