package entity

// AnswerEntry строка реестра ответов: файл и метка, введённая человеком.
type AnswerEntry struct {
	Filename string
	Label    string
}

// AnswerLedger упорядоченный реестр ответов. Пустая метка — нет эталона.
type AnswerLedger struct {
	Entries []AnswerEntry
	index   map[string]int
}

// NewAnswerLedger строит реестр; при повторе имени файла побеждает последняя строка.
func NewAnswerLedger(entries []AnswerEntry) *AnswerLedger {
	l := &AnswerLedger{
		Entries: entries,
		index:   make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		l.index[e.Filename] = i
	}
	return l
}

// Lookup возвращает метку по имени файла. ok=false, если файла нет в реестре.
func (l *AnswerLedger) Lookup(filename string) (label string, ok bool) {
	if l == nil {
		return "", false
	}
	i, ok := l.index[filename]
	if !ok {
		return "", false
	}
	return l.Entries[i].Label, true
}

// Truth возвращает эталонную метку или "" если её нет.
func (l *AnswerLedger) Truth(filename string) string {
	label, _ := l.Lookup(filename)
	return label
}

// Unlabeled возвращает строки без метки.
func (l *AnswerLedger) Unlabeled() []AnswerEntry {
	if l == nil {
		return nil
	}
	var out []AnswerEntry
	for _, e := range l.Entries {
		if e.Label == "" {
			out = append(out, e)
		}
	}
	return out
}

// Len количество строк.
func (l *AnswerLedger) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Entries)
}

// Missing возвращает имена, которых нет в реестре, в исходном порядке.
func (l *AnswerLedger) Missing(filenames []string) []string {
	var out []string
	for _, name := range filenames {
		if _, ok := l.Lookup(name); !ok {
			out = append(out, name)
		}
	}
	return out
}
