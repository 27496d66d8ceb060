// Package i18n looks up localized strings for the static labels of the
// utility pages.
package i18n

import (
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message ids
const (
	Input         = "crypto.input"
	InputText     = "crypto.input.text"
	InputFile     = "crypto.input.file"
	Output        = "crypto.output"
	Copy          = "crypto.copy"
	CopySuccess   = "crypto.copy.success"
	ClearInput    = "crypto.clear.input"
	ClearOutput   = "crypto.clear.output"
	Encode        = "crypto.encode"
	Decode        = "crypto.decode"
	ParseJWT      = "crypto.jwt.parse"
	JWTInputHint  = "crypto.jwt.placeholder"
	JWTOutputHint = "crypto.jwt.output.placeholder"
	MenuBase64    = "menu.crypto.base64"
	MenuJWT       = "menu.crypto.jwt"
	MenuURL       = "menu.crypto.url"
	ErrorTitle    = "crypto.error"
	AppTitle      = "app.title"
)

// Menu returns the id of a tool's menu title.
func Menu(tool string) string {
	return "menu.crypto." + tool
}

var messages = map[language.Tag]map[string]string{
	language.English: {
		Input:         "Input",
		InputText:     "Text",
		InputFile:     "File",
		Output:        "Output",
		Copy:          "Copy",
		CopySuccess:   "Copied to clipboard successfully.",
		ClearInput:    "Clear Input",
		ClearOutput:   "Clear Output",
		Encode:        "Encode",
		Decode:        "Decode",
		ParseJWT:      "Parse JWT",
		JWTInputHint:  "Enter JWT token",
		JWTOutputHint: "Parsed JWT result will appear here",
		MenuBase64:    "Base64 Encode/Decode",
		MenuJWT:       "JWT Decode",
		MenuURL:       "URL Encode/Decode",
		ErrorTitle:    "Error",
		AppTitle:      "Developer Tools",
	},
	language.Chinese: {
		Input:         "输入",
		InputText:     "文本",
		InputFile:     "文件",
		Output:        "输出",
		Copy:          "复制",
		CopySuccess:   "已复制到剪贴板。",
		ClearInput:    "清空输入",
		ClearOutput:   "清空输出",
		Encode:        "编码",
		Decode:        "解码",
		ParseJWT:      "解析 JWT",
		JWTInputHint:  "请输入 JWT",
		JWTOutputHint: "解析结果将显示在这里",
		MenuBase64:    "Base64 编码/解码",
		MenuJWT:       "JWT 解析",
		MenuURL:       "URL 编码/解码",
		ErrorTitle:    "错误",
		AppTitle:      "开发者工具",
	},
}

// Languages returns the supported languages, fallback first.
func (c *Catalog) Languages() []language.Tag {
	return c.tags
}

// Catalog holds the localized labels.
type Catalog struct {
	cat     *catalog.Builder
	tags    []language.Tag
	matcher language.Matcher
	ids     []string
}

// New builds the catalog. The fallback tag is preferred when a request
// matches no supported language.
func New(fallback language.Tag) *Catalog {
	cat := catalog.NewBuilder(catalog.Fallback(fallback))
	ids := make([]string, 0, len(messages[language.English]))

	for tag, msgs := range messages {
		for id, msg := range msgs {
			cat.SetString(tag, id, msg)
		}
	}
	for id := range messages[language.English] {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	tags := []language.Tag{fallback}
	for _, tag := range cat.Languages() {
		if tag != fallback {
			tags = append(tags, tag)
		}
	}

	return &Catalog{
		cat:     cat,
		tags:    tags,
		matcher: language.NewMatcher(tags),
		ids:     ids,
	}
}

// Match picks the best supported language for an Accept-Language header
// value and any explicit language requests (e.g. a ?lang= parameter),
// which take precedence.
func (c *Catalog) Match(acceptLanguage string, explicit ...string) language.Tag {
	var prefs []language.Tag
	for _, s := range explicit {
		if tag, err := language.Parse(s); err == nil {
			prefs = append(prefs, tag)
		}
	}
	if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil {
		prefs = append(prefs, tags...)
	}

	_, idx, _ := c.matcher.Match(prefs...)
	return c.tags[idx]
}

// Lookup returns the localized string for id, or id itself when the
// catalog has no such message.
func (c *Catalog) Lookup(tag language.Tag, id string) string {
	return message.NewPrinter(tag, message.Catalog(c.cat)).Sprintf(id)
}

// All returns every label for tag keyed by message id.
func (c *Catalog) All(tag language.Tag) map[string]string {
	p := message.NewPrinter(tag, message.Catalog(c.cat))
	all := make(map[string]string, len(c.ids))
	for _, id := range c.ids {
		all[id] = p.Sprintf(id)
	}
	return all
}
