package render

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"sync"
)

//go:embed layouts/*.html
var layoutFS embed.FS

// TemplateManager хранит разобранные HTML-шаблоны документа по имени.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	return &TemplateManager{
		templates: make(map[string]*template.Template),
	}
}

// Render выполняет шаблон с данными
func (tm *TemplateManager) Render(name string, data any) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[name]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", name)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name, text string) error {
	tpl, err := template.New(name).Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}

// LoadTemplates загружает все *.html из файловой системы; имя - файл без расширения.
func (tm *TemplateManager) LoadTemplates(fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".html") {
			return nil
		}

		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", p, err)
		}
		name := strings.TrimSuffix(path.Base(p), ".html")
		if err := tm.AddTemplate(name, string(content)); err != nil {
			return fmt.Errorf("failed to add template %s: %w", name, err)
		}
		return nil
	})
}

var (
	defaultManager     *TemplateManager
	defaultManagerErr  error
	defaultManagerOnce sync.Once
)

func layouts() (*TemplateManager, error) {
	defaultManagerOnce.Do(func() {
		sub, err := fs.Sub(layoutFS, "layouts")
		if err != nil {
			defaultManagerErr = err
			return
		}
		tm := NewTemplateManager()
		defaultManagerErr = tm.LoadTemplates(sub)
		defaultManager = tm
	})
	return defaultManager, defaultManagerErr
}

type sectionView struct {
	Section
	Accent   string
	ChipText string
}

// htmlView - данные для шаблона; фото из data URI помечено как безопасный URL.
type htmlView struct {
	Template   string
	Layout     string
	IsSidebar  bool
	IsGradient bool
	Accent     string
	Gradient   string
	Header     Header
	PhotoSrc   any
	Main       []sectionView
	Sidebar    []sectionView
}

func newHTMLView(doc *Document) htmlView {
	view := htmlView{
		Template:   string(doc.Template),
		Layout:     string(doc.Layout),
		IsSidebar:  doc.Layout == LayoutSidebar,
		IsGradient: doc.Layout == LayoutGradientHeader,
		Accent:     doc.Accent,
		Gradient:   doc.Gradient,
		Header:     doc.Header,
	}
	if src := doc.Header.Photo; src != "" {
		if strings.HasPrefix(src, "data:image/") {
			view.PhotoSrc = template.URL(src)
		} else {
			view.PhotoSrc = src
		}
	}
	wrap := func(in []Section) []sectionView {
		out := make([]sectionView, 0, len(in))
		for _, s := range in {
			out = append(out, sectionView{Section: s, Accent: doc.Accent, ChipText: doc.ChipText})
		}
		return out
	}
	view.Main = wrap(doc.Main)
	view.Sidebar = wrap(doc.Sidebar)
	return view
}

// HTML сериализует документ в HTML-страницу предпросмотра.
func HTML(doc *Document) (string, error) {
	tm, err := layouts()
	if err != nil {
		return "", err
	}
	return tm.Render("document", newHTMLView(doc))
}
