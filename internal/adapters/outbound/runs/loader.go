// Package runs loads example pipelineRun definitions from a local
// directory. The directory is optional; its absence is never an error.
package runs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/camelcase"
	"gopkg.in/yaml.v3"
)

// Loader implements domain.RunLoader over a directory of YAML files.
type Loader struct {
	dir string
}

func New(dir string) *Loader {
	return &Loader{dir: dir}
}

// LoadAll returns every parseable definition in the directory, each
// prefixed with its filename and joined with document separators. An absent
// directory yields "".
func (l *Loader) LoadAll() (string, error) {
	files, err := l.definitionFiles()
	if err != nil || len(files) == 0 {
		return "", err
	}

	var docs []string
	for _, path := range files {
		body, ok := readDefinition(path)
		if !ok {
			continue
		}
		docs = append(docs, filepath.Base(path)+":\n"+body+"\n")
	}
	return strings.Join(docs, "\n---\n"), nil
}

// BestMatch returns the definition whose filename shares the most word
// tokens with the component name, or "" when nothing overlaps at all.
func (l *Loader) BestMatch(componentName string) (string, error) {
	files, err := l.definitionFiles()
	if err != nil || len(files) == 0 {
		return "", err
	}

	want := tokens(componentName)
	best := ""
	bestScore := 0
	for _, path := range files {
		score := overlap(want, tokens(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))))
		if score > bestScore {
			best = path
			bestScore = score
		}
	}
	if best == "" {
		return "", nil
	}

	body, ok := readDefinition(best)
	if !ok {
		return "", nil
	}
	return filepath.Base(best) + ":\n" + body + "\n", nil
}

func (l *Loader) definitionFiles() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".yaml", ".yml":
			files = append(files, filepath.Join(l.dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// readDefinition reads a file and checks it is actually YAML; broken
// definitions are passed over rather than poisoning the concatenation.
func readDefinition(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	var probe any
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return "", false
	}
	return string(data), true
}

// tokens splits an identifier into lowercase words, handling kebab-case,
// snake_case, dots, and camelCase humps.
func tokens(s string) map[string]bool {
	set := make(map[string]bool)
	for _, chunk := range strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || r == ' '
	}) {
		for _, word := range camelcase.Split(chunk) {
			word = strings.ToLower(word)
			if word != "" {
				set[word] = true
			}
		}
	}
	return set
}

func overlap(a, b map[string]bool) int {
	n := 0
	for w := range a {
		if b[w] {
			n++
		}
	}
	return n
}
