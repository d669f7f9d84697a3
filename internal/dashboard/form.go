package dashboard

import (
	"fmt"
	"strings"
	"time"
)

// Kind names one of the managed content collections.
type Kind string

const (
	KindLeaders   Kind = "leaders"
	KindEvents    Kind = "events"
	KindBlogs     Kind = "blogs"
	KindNews      Kind = "news"
	KindResources Kind = "resources"
)

// Kinds lists every collection in tab order.
var Kinds = []Kind{KindLeaders, KindEvents, KindBlogs, KindNews, KindResources}

// Path is the API path segment for the kind.
func (k Kind) Path() string { return string(k) }

// Label is the human-readable tab title.
func (k Kind) Label() string {
	switch k {
	case KindLeaders:
		return "Leaders"
	case KindEvents:
		return "Events"
	case KindBlogs:
		return "Blogs"
	case KindNews:
		return "News"
	case KindResources:
		return "Resources"
	}
	return string(k)
}

// Control is the input widget a field renders as.
type Control string

const (
	ControlText     Control = "text"
	ControlTextarea Control = "textarea"
	ControlDate     Control = "date"
	ControlTime     Control = "time"
	ControlCheckbox Control = "checkbox"
	ControlSelect   Control = "select"
	ControlFile     Control = "file"
	ControlURL      Control = "url"
)

// Field describes one editable attribute of an entity.
type Field struct {
	Name     string
	Label    string
	Control  Control
	Required bool
	Options  []string
}

// Attachment is a file staged for upload with the next save.
type Attachment struct {
	FileName string
	Content  []byte
}

// Form is the edit state for one record: the values as loaded and the
// values as edited. A zero ID means the save will create a new record.
type Form struct {
	Kind   Kind
	ID     string
	Values map[string]any
	File   *Attachment
}

// NewForm opens an empty create form for the kind.
func NewForm(kind Kind) *Form {
	f := &Form{Kind: kind, Values: map[string]any{}}
	for _, field := range f.Fields() {
		if field.Control == ControlCheckbox {
			f.Values[field.Name] = false
		}
		if field.Control == ControlSelect && len(field.Options) > 0 {
			f.Values[field.Name] = field.Options[0]
		}
	}
	return f
}

// EditForm opens a form pre-filled from an existing record. Stored
// values are normalized into the shapes the controls edit: the event
// instant is split into date and time inputs, and blog tags become one
// comma-separated string.
func EditForm(kind Kind, record Record) *Form {
	f := &Form{Kind: kind, ID: record.ID(), Values: map[string]any{}}
	for _, field := range f.Fields() {
		value, ok := record[field.Name]
		if !ok {
			continue
		}
		f.Values[field.Name] = value
	}

	if kind == KindEvents {
		if date, ok := record["date"].(string); ok {
			if parsed, err := time.Parse(time.RFC3339, date); err == nil {
				f.Values["date"] = parsed.Format("2006-01-02")
			}
		}
	}
	if kind == KindBlogs {
		f.Values["tags"] = joinTags(record["tags"])
	}
	return f
}

func (f *Form) Set(name string, value any) {
	if f.Values == nil {
		f.Values = map[string]any{}
	}
	f.Values[name] = value
}

func (f *Form) Attach(fileName string, content []byte) {
	f.File = &Attachment{FileName: fileName, Content: content}
}

// Fields returns the descriptors valid for the form's kind. For
// resources the source control follows the currently selected type:
// uploaded types get a file picker, link and video get a URL field.
func (f *Form) Fields() []Field {
	switch f.Kind {
	case KindLeaders:
		return []Field{
			{Name: "name", Label: "Name", Control: ControlText, Required: true},
			{Name: "position", Label: "Position", Control: ControlText, Required: true},
			{Name: "department", Label: "Department", Control: ControlText, Required: true},
			{Name: "year", Label: "Year", Control: ControlText, Required: true},
			{Name: "bio", Label: "Bio", Control: ControlTextarea, Required: true},
			{Name: "email", Label: "Email", Control: ControlText, Required: true},
			{Name: "image", Label: "Photo", Control: ControlFile, Required: true},
			{Name: "linkedIn", Label: "LinkedIn", Control: ControlURL},
			{Name: "isExecutive", Label: "Executive member", Control: ControlCheckbox},
		}
	case KindEvents:
		return []Field{
			{Name: "title", Label: "Title", Control: ControlText, Required: true},
			{Name: "description", Label: "Description", Control: ControlTextarea, Required: true},
			{Name: "date", Label: "Date", Control: ControlDate, Required: true},
			{Name: "time", Label: "Time", Control: ControlTime, Required: true},
			{Name: "location", Label: "Location", Control: ControlText, Required: true},
			{Name: "category", Label: "Category", Control: ControlSelect,
				Options: []string{"academic", "social", "workshop", "competition", "meeting"}},
			{Name: "image", Label: "Cover image", Control: ControlFile},
			{Name: "isActive", Label: "Active", Control: ControlCheckbox},
			{Name: "isHighlighted", Label: "Highlighted", Control: ControlCheckbox},
		}
	case KindBlogs:
		return []Field{
			{Name: "title", Label: "Title", Control: ControlText, Required: true},
			{Name: "excerpt", Label: "Excerpt", Control: ControlTextarea, Required: true},
			{Name: "content", Label: "Content", Control: ControlTextarea, Required: true},
			{Name: "author", Label: "Author", Control: ControlText, Required: true},
			{Name: "category", Label: "Category", Control: ControlSelect,
				Options: []string{"general", "research", "tutorial", "experience", "opinion"}},
			{Name: "tags", Label: "Tags (comma separated)", Control: ControlText},
			{Name: "image", Label: "Cover image", Control: ControlFile},
			{Name: "isPublished", Label: "Published", Control: ControlCheckbox},
		}
	case KindNews:
		return []Field{
			{Name: "title", Label: "Title", Control: ControlText, Required: true},
			{Name: "summary", Label: "Summary", Control: ControlTextarea},
			{Name: "content", Label: "Content", Control: ControlTextarea, Required: true},
			{Name: "author", Label: "Author", Control: ControlText},
			{Name: "category", Label: "Category", Control: ControlSelect,
				Options: []string{"general", "announcement", "achievement", "event"}},
			{Name: "image", Label: "Cover image", Control: ControlFile},
			{Name: "isPublished", Label: "Published", Control: ControlCheckbox},
		}
	case KindResources:
		fields := []Field{
			{Name: "title", Label: "Title", Control: ControlText, Required: true},
			{Name: "description", Label: "Description", Control: ControlTextarea},
			{Name: "type", Label: "Type", Control: ControlSelect, Required: true,
				Options: []string{"pdf", "document", "link", "video"}},
		}
		if isUploadedResource(f.resourceType()) {
			fields = append(fields, Field{Name: "fileUrl", Label: "File", Control: ControlFile, Required: true})
		} else {
			fields = append(fields, Field{Name: "fileUrl", Label: "URL", Control: ControlURL, Required: true})
		}
		return append(fields,
			Field{Name: "department", Label: "Department", Control: ControlText, Required: true},
			Field{Name: "year", Label: "Year", Control: ControlText, Required: true},
		)
	}
	return nil
}

// MissingRequired names the required fields that are still empty. A
// staged attachment satisfies file controls.
func (f *Form) MissingRequired() []string {
	var missing []string
	for _, field := range f.Fields() {
		if !field.Required {
			continue
		}
		if field.Control == ControlFile && f.File != nil {
			continue
		}
		value, ok := f.Values[field.Name]
		if !ok {
			missing = append(missing, field.Name)
			continue
		}
		if s, isString := value.(string); isString && strings.TrimSpace(s) == "" {
			missing = append(missing, field.Name)
		}
	}
	return missing
}

// Payload builds the JSON body for create or update. Edited values are
// folded back into wire shape: event date and time become one RFC 3339
// instant, blog tags are split on commas with blanks dropped.
func (f *Form) Payload() (map[string]any, error) {
	payload := make(map[string]any, len(f.Values))
	for _, field := range f.Fields() {
		value, ok := f.Values[field.Name]
		if !ok {
			continue
		}
		payload[field.Name] = value
	}

	if f.Kind == KindEvents {
		date, _ := payload["date"].(string)
		clock, _ := payload["time"].(string)
		if date != "" {
			instant, err := eventInstant(date, clock)
			if err != nil {
				return nil, err
			}
			payload["date"] = instant.Format(time.RFC3339)
		}
	}
	if f.Kind == KindBlogs {
		if raw, ok := payload["tags"].(string); ok {
			payload["tags"] = splitTags(raw)
		}
	}
	return payload, nil
}

func (f *Form) resourceType() string {
	t, _ := f.Values["type"].(string)
	return t
}

func isUploadedResource(t string) bool {
	return t == "pdf" || t == "document" || t == "file"
}

// eventInstant combines the date and time inputs into one instant in
// UTC. A missing clock defaults to midnight.
func eventInstant(date, clock string) (time.Time, error) {
	if clock == "" {
		clock = "00:00"
	}
	instant, err := time.Parse("2006-01-02 15:04", date+" "+clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date or time: %w", err)
	}
	return instant, nil
}

func splitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func joinTags(value any) string {
	switch tags := value.(type) {
	case []string:
		return strings.Join(tags, ", ")
	case []any:
		parts := make([]string, 0, len(tags))
		for _, tag := range tags {
			if s, ok := tag.(string); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	}
	return ""
}
