package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldNames(fields []Field) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	return names
}

func fieldByName(t *testing.T, fields []Field, name string) Field {
	t.Helper()
	for _, f := range fields {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("field %q not found in %v", name, fieldNames(fields))
	return Field{}
}

func TestFieldsPerKind(t *testing.T) {
	assert.Equal(t,
		[]string{"name", "position", "department", "year", "bio", "email", "image", "linkedIn", "isExecutive"},
		fieldNames(NewForm(KindLeaders).Fields()))
	assert.Equal(t,
		[]string{"title", "description", "date", "time", "location", "category", "image", "isActive", "isHighlighted"},
		fieldNames(NewForm(KindEvents).Fields()))
	assert.Equal(t,
		[]string{"title", "excerpt", "content", "author", "category", "tags", "image", "isPublished"},
		fieldNames(NewForm(KindBlogs).Fields()))
	assert.Equal(t,
		[]string{"title", "summary", "content", "author", "category", "image", "isPublished"},
		fieldNames(NewForm(KindNews).Fields()))
	assert.Equal(t,
		[]string{"title", "description", "type", "fileUrl", "department", "year"},
		fieldNames(NewForm(KindResources).Fields()))
}

func TestEventDateSplitsForEditing(t *testing.T) {
	form := EditForm(KindEvents, Record{
		"id":    "e1",
		"title": "Fair",
		"date":  "2026-10-01T14:00:00Z",
		"time":  "14:00",
	})
	assert.Equal(t, "2026-10-01", form.Values["date"])
	assert.Equal(t, "14:00", form.Values["time"])
}

func TestEventPayloadRebuildsInstant(t *testing.T) {
	form := NewForm(KindEvents)
	form.Set("title", "Fair")
	form.Set("date", "2026-10-01")
	form.Set("time", "09:30")

	payload, err := form.Payload()
	require.NoError(t, err)
	assert.Equal(t, "2026-10-01T09:30:00Z", payload["date"])
	assert.Equal(t, "09:30", payload["time"])
}

func TestEventPayloadRejectsBadDate(t *testing.T) {
	form := NewForm(KindEvents)
	form.Set("date", "October first")

	_, err := form.Payload()
	require.Error(t, err)
}

func TestBlogTagsRoundTrip(t *testing.T) {
	form := EditForm(KindBlogs, Record{
		"id":   "b1",
		"tags": []any{"go", "backend"},
	})
	assert.Equal(t, "go, backend", form.Values["tags"])

	form.Set("tags", " go ,  backend ,, mongo ")
	payload, err := form.Payload()
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "backend", "mongo"}, payload["tags"])
}

func TestResourceSourceSwitchesWithType(t *testing.T) {
	form := NewForm(KindResources)

	form.Set("type", "pdf")
	assert.Equal(t, ControlFile, fieldByName(t, form.Fields(), "fileUrl").Control)

	form.Set("title", "Lecture recording")
	form.Set("department", "Biology")

	form.Set("type", "video")
	assert.Equal(t, ControlURL, fieldByName(t, form.Fields(), "fileUrl").Control)

	// Switching the type keeps everything else the user entered.
	assert.Equal(t, "Lecture recording", form.Values["title"])
	assert.Equal(t, "Biology", form.Values["department"])
}

func TestMissingRequired(t *testing.T) {
	form := NewForm(KindLeaders)
	form.Set("name", "Awa")
	form.Set("bio", "   ")

	missing := form.MissingRequired()
	assert.NotContains(t, missing, "name")
	assert.Contains(t, missing, "bio")
	assert.Contains(t, missing, "position")
	assert.Contains(t, missing, "image")

	// A staged file satisfies the image requirement.
	form.Attach("awa.jpg", []byte("bytes"))
	assert.NotContains(t, form.MissingRequired(), "image")
}

func TestPayloadDropsUnknownKeys(t *testing.T) {
	form := NewForm(KindNews)
	form.Set("title", "Notice")
	form.Set("bogus", "value")

	payload, err := form.Payload()
	require.NoError(t, err)
	assert.Contains(t, payload, "title")
	assert.NotContains(t, payload, "bogus")
}
