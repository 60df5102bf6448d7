// Package match решает, какие таблицы сортируются и в каком порядке идут записи.
//
// Назначение:
//   - ключ сортировки и сравнение ключей
//   - классы записей для разбиения на группы
//   - отдельные правила для inline-таблиц зависимостей (Cargo)
//
// Не делает:
//   - не переставляет записи (см. internal/sorter)
//   - не проверяет смысл зависимостей
package match
