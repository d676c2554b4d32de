package state

import (
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// codeLanguageAliases maps alternative language ids to the ids code blocks
// store.
var codeLanguageAliases = map[string]string{
	"cpp":        "cpp",
	"java":       "java",
	"javascript": "js",
	"md":         "markdown",
	"plaintext":  "plain",
	"python":     "py",
	"text":       "plain",
	"ts":         "typescript",
}

// codeLanguageNames are the languages offered by the code language dropdown.
var codeLanguageNames = map[string]string{
	"c":          "C",
	"clike":      "C-like",
	"cpp":        "C++",
	"css":        "CSS",
	"html":       "HTML",
	"java":       "Java",
	"js":         "JavaScript",
	"markdown":   "Markdown",
	"objc":       "Objective-C",
	"plain":      "Plain Text",
	"powershell": "PowerShell",
	"py":         "Python",
	"rust":       "Rust",
	"sql":        "SQL",
	"swift":      "Swift",
	"typescript": "TypeScript",
	"xml":        "XML",
}

// NormalizeCodeLanguage maps a code block language to the id the toolbar
// tracks. Unknown ids pass through unchanged.
func NormalizeCodeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return ""
	}
	if id, ok := codeLanguageAliases[lang]; ok {
		return id
	}
	return lang
}

// CodeLanguageName returns the display name of a language id. Languages the
// dropdown does not list are named after the matching syntax lexer, if any.
func CodeLanguageName(id string) string {
	id = NormalizeCodeLanguage(id)
	if name, ok := codeLanguageNames[id]; ok {
		return name
	}
	if id == "" {
		return ""
	}
	if lexer := lexers.Get(id); lexer != nil {
		return lexer.Config().Name
	}
	return id
}

// CodeLanguage is one entry of the code language dropdown.
type CodeLanguage struct {
	ID   string
	Name string
}

// CodeLanguages returns the dropdown entries ordered by id.
func CodeLanguages() []CodeLanguage {
	out := make([]CodeLanguage, 0, len(codeLanguageNames))
	for id, name := range codeLanguageNames {
		out = append(out, CodeLanguage{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
