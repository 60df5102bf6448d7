// Package driver обрабатывает набор манифестов за один запуск.
//
// Назначение:
//   - дедупликация путей и пул воркеров (errgroup) с ограничением Jobs
//   - чтение, преобразование, проверка сохранности данных и запись файла
//   - кэш вердиктов проверки на диске (msgpack)
//   - события прогресса для UI и спаны трассировки
//
// Не делает: не печатает ничего сам; вывод и коды возврата остаются за CLI.
// Ошибка одного манифеста не останавливает остальные.
package driver
