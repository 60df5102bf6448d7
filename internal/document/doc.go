// Package document implements a lossless, editable model of a manifest.
//
// Назначение: разобрать Cargo.toml-подобный текст в таблицы и записи так,
// чтобы String() без правок возвращал исходные байты.
// Не делает: сортировку, форматирование, IO.
// Зависимости: internal/lexer, internal/source, BurntSushi/toml (валидация).
//
// Surface text is attached to the statement it belongs to:
//
//   - comment lines directly above an entry or header (no blank line in
//     between) are its Leading block and travel with it;
//   - the lines after an entry, up to and including the last blank run
//     before the next comment block, are its Trailing lines;
//   - lines between a header and the first entry's comment block are the
//     table Intro, lines after the last entry up to the next header's comment
//     block are the table Trailer.
package document
