// Package report holds the content of the PHP tasks lab report and turns it
// into a paginated PDF.
package report

// Cover holds the title page texts.
type Cover struct {
	Title        string `yaml:"title"`
	Subtitle     string `yaml:"subtitle"`
	PreparedBy   string `yaml:"prepared_by"`
	Introduction string `yaml:"introduction"`

	// Keywords become the PDF keywords metadata. Optional.
	Keywords []string `yaml:"keywords"`
}

// Task is the static content of one report section.
type Task struct {
	Name        string   `yaml:"name"`
	Aim         string   `yaml:"aim"`
	Problem     string   `yaml:"problem"`
	Constraints []string `yaml:"constraints"`
	Procedure   []string `yaml:"procedure"`

	// Program and Screenshot are slash-separated paths relative to the base directory.
	Program    string `yaml:"program"`
	Screenshot string `yaml:"screenshot"`

	Conclusion string `yaml:"conclusion"`
}

func (t Task) clone() Task {
	t.Constraints = append([]string(nil), t.Constraints...)
	t.Procedure = append([]string(nil), t.Procedure...)
	return t
}

// definitionFile is the YAML layout of a definition.
type definitionFile struct {
	Output            string `yaml:"output"`
	ScreenshotCaption string `yaml:"screenshot_caption"`
	Cover             Cover  `yaml:"cover"`
	Tasks             []Task `yaml:"tasks"`
}

// Definition is the immutable content of a report. Accessors return copies.
type Definition struct {
	file definitionFile
}

// Cover returns the title page texts.
func (d *Definition) Cover() Cover {
	c := d.file.Cover
	c.Keywords = append([]string(nil), c.Keywords...)
	return c
}

// Tasks returns the tasks in declaration order.
func (d *Definition) Tasks() []Task {
	out := make([]Task, len(d.file.Tasks))
	for i, t := range d.file.Tasks {
		out[i] = t.clone()
	}
	return out
}

// OutputPath returns the slash-separated output path relative to the base directory.
func (d *Definition) OutputPath() string {
	return d.file.Output
}

// ScreenshotCaption returns the text placed above each screenshot.
func (d *Definition) ScreenshotCaption() string {
	return d.file.ScreenshotCaption
}
