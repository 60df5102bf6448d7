package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические
	LexUnterminatedString Code = 1001
	LexBareCarriageReturn Code = 1002
	LexControlChar        Code = 1003
	LexInvalidKey         Code = 1004

	// Синтаксические
	SynUnexpectedToken     Code = 2001
	SynExpectEquals        Code = 2002
	SynExpectValue         Code = 2003
	SynExpectNewline       Code = 2004
	SynUnclosedArray       Code = 2005
	SynUnclosedInlineTable Code = 2006
	SynUnclosedHeader      Code = 2007
	SynNewlineInInline     Code = 2008

	// Семантика TOML (дубликаты ключей, неверные числа и т.п.)
	SemInvalidDocument Code = 3001

	// Ввод/вывод
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002

	// Проект / workspace
	PrjManifestNotFound Code = 5001
	PrjBadWorkspace     Code = 5002

	// Результаты проверки
	ChkUnsorted    Code = 6001
	ChkUnformatted Code = 6002
	ChkDataChanged Code = 6003
)

var codeDescription = map[Code]string{
	UnknownCode:            "Unknown error",
	LexUnterminatedString:  "Unterminated string",
	LexBareCarriageReturn:  "Bare carriage return",
	LexControlChar:         "Control character not allowed",
	LexInvalidKey:          "Invalid key",
	SynUnexpectedToken:     "Unexpected token",
	SynExpectEquals:        "Expected '=' after key",
	SynExpectValue:         "Expected value",
	SynExpectNewline:       "Expected newline",
	SynUnclosedArray:       "Unclosed array",
	SynUnclosedInlineTable: "Unclosed inline table",
	SynUnclosedHeader:      "Unclosed table header",
	SynNewlineInInline:     "Newline in inline table",
	SemInvalidDocument:     "Invalid TOML document",
	IOLoadFileError:        "I/O load file error",
	IOWriteFileError:       "I/O write file error",
	PrjManifestNotFound:    "Manifest not found",
	PrjBadWorkspace:        "Invalid workspace definition",
	ChkUnsorted:            "Manifest is not sorted",
	ChkUnformatted:         "Manifest is not formatted",
	ChkDataChanged:         "Transform changed manifest data",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("CHK%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
