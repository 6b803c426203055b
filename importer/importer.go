// Package importer turns loose content files into script documents.
//
// Generators declare which file extensions they can handle and offer import
// options with priorities; the importer collects the options for a batch of
// files and picks the best one per file. The caller (typically an editor
// shell) can override the selection before executing the import.
package importer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/vizscript/vizscript/log"
)

// Priority ranks how well a generator fits an input file. A generator that
// only technically accepts the extension reports Undecided; the natural
// importer for a format reports High.
type Priority int

const (
	PriorityUndecided Priority = iota
	PriorityLow
	PriorityDefault
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityUndecided:
		return "Undecided"
	case PriorityLow:
		return "Low"
	case PriorityDefault:
		return "Default"
	case PriorityHigh:
		return "High"
	}
	return fmt.Sprintf("Priority(%d)", int(p))
}

// Option is one way a generator offers to import a file.
type Option struct {
	Priority   Priority
	Name       string // tells Generate which action to take
	OutputFile string // parent-relative output path
	Icon       string

	// set by BuildImports
	Generator Generator
}

// Document is a generated script document.
type Document struct {
	ID    string
	Path  string
	Group string
}

// Generator converts one class of input files into documents.
type Generator interface {
	// ImportModes returns the options this generator offers for a file,
	// given its parent-relative path.
	ImportModes(parentRelPath string) []Option

	// Generate performs the import action named by the option.
	Generate(path string, opt Option) (*Document, error)

	// DocumentExtension is the extension of generated documents,
	// without the dot.
	DocumentExtension() string

	// Group names the asset category shown in import dialogs.
	Group() string

	// SupportsFileType reports whether the generator accepts the file.
	SupportsFileType(path string) bool
}

// GeneratorBase carries the supported-extension set; concrete generators
// embed it and register extensions in their constructor.
type GeneratorBase struct {
	extensions []string
}

// AddSupportedFileType registers an input extension, without the dot.
func (g *GeneratorBase) AddSupportedFileType(ext string) {
	g.extensions = append(g.extensions, strings.ToLower(ext))
}

// SupportsFileType reports whether the file's extension was registered.
func (g *GeneratorBase) SupportsFileType(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	for _, e := range g.extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// FileFilter returns a dialog filter fragment like "*.vgraph;*.vs".
func (g *GeneratorBase) FileFilter() string {
	parts := make([]string, len(g.extensions))
	for i, e := range g.extensions {
		parts[i] = "*." + e
	}
	return strings.Join(parts, ";")
}

// NewDocument builds a document with a fresh random ID.
func NewDocument(path, group string) *Document {
	return &Document{
		ID:    uuid.NewString(),
		Path:  path,
		Group: group,
	}
}

// Import is the per-file import state: the offered options and the current
// selection.
type Import struct {
	Group          string
	InputFile      string
	SelectedOption int // index into Options, -1 when nothing is selected
	Message        string
	DoNotImport    bool
	Options        []Option
}

// BuildImports collects import options for each file from the given
// generators and preselects the best one. Files whose extension already is
// a document extension need no import and come back with DoNotImport set.
func BuildImports(files []string, generators []Generator) []*Import {
	imports := make([]*Import, 0, len(files))

	for _, file := range files {
		imp := &Import{
			InputFile:      file,
			SelectedOption: -1,
		}
		imports = append(imports, imp)

		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file), "."))
		if isDocumentExtension(ext, generators) {
			imp.DoNotImport = true
			imp.Message = "already a document"
			continue
		}

		parentRel := filepath.Base(file)
		for _, gen := range generators {
			if !gen.SupportsFileType(file) {
				continue
			}
			imp.Group = gen.Group()
			for _, opt := range gen.ImportModes(parentRel) {
				opt.Generator = gen
				imp.Options = append(imp.Options, opt)
			}
		}

		if len(imp.Options) == 0 {
			imp.DoNotImport = true
			imp.Message = "no importer found"
			continue
		}

		imp.SelectedOption = selectBest(imp.Options)
	}

	return imports
}

// selectBest returns the index of the highest-priority option, keeping the
// first among equals. Returns -1 when no option rises above Undecided.
func selectBest(options []Option) int {
	best := -1
	bestPriority := PriorityUndecided
	for i, opt := range options {
		if opt.Priority > bestPriority {
			best = i
			bestPriority = opt.Priority
		}
	}
	return best
}

// ExecuteImports runs the selected option of every import that has one.
// A failed import records its error message and does not stop the batch.
func ExecuteImports(imports []*Import) []*Document {
	var docs []*Document

	for _, imp := range imports {
		if imp.DoNotImport || imp.SelectedOption < 0 {
			continue
		}

		opt := imp.Options[imp.SelectedOption]
		doc, err := opt.Generator.Generate(imp.InputFile, opt)
		if err != nil {
			imp.Message = err.Error()
			log.Error("import of %q failed: %v", imp.InputFile, err)
			continue
		}

		imp.Message = "imported"
		log.Info("imported %q as %q", imp.InputFile, doc.Path)
		docs = append(docs, doc)
	}

	return docs
}

func isDocumentExtension(ext string, generators []Generator) bool {
	for _, gen := range generators {
		if strings.EqualFold(gen.DocumentExtension(), ext) {
			return true
		}
	}
	return false
}
