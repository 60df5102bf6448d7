// Package config собирает единственное значение Config для запуска.
//
// Назначение: значения по умолчанию, файл tomlfmt.toml / .tomlfmt.toml, флаги командной строки.
// Приоритет: флаг > файл > значение по умолчанию.
// Зависимости: github.com/spf13/viper, github.com/spf13/pflag.
package config
