package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "field").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "required":
			return "必須プロパティが不足しています"
		case "unknown_key":
			return "未知のキーです"
		case "too_small":
			return "小さすぎます"
		case "too_big":
			return "大きすぎます"
		case "too_short":
			return "短すぎます"
		case "too_long":
			return "長すぎます"
		case "pattern":
			return "パターンに一致しません"
		case "invalid_enum":
			return "列挙値が不正です"
		case "invalid_format":
			return "フォーマットが不正です"
		case "uniqueness":
			return "要素が重複しています"
		case "discriminator_missing":
			return "判別子がありません"
		case "discriminator_unknown":
			return "未知の判別子です"
		case "parse_error":
			return "解析エラー"
		case "overflow":
			return "可変長整数が長すぎます"
		case "truncated":
			return "入力が途中で終了しています"
		case "unsupported_wire_type":
			return "未対応のワイヤ型です"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return "invalid type"
		case "required":
			return "required property missing"
		case "unknown_key":
			return "unknown key"
		case "too_small":
			return "too small"
		case "too_big":
			return "too big"
		case "too_short":
			return "too short"
		case "too_long":
			return "too long"
		case "pattern":
			return "pattern mismatch"
		case "invalid_enum":
			return "invalid enum value"
		case "invalid_format":
			return "invalid format"
		case "uniqueness":
			return "duplicate element"
		case "discriminator_missing":
			return "discriminator missing"
		case "discriminator_unknown":
			return "unknown discriminator"
		case "parse_error":
			return "parse error"
		case "overflow":
			return "varint overflow"
		case "truncated":
			return "truncated input"
		case "unsupported_wire_type":
			return "unsupported wire type"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
