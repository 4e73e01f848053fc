package changeset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCast(t *testing.T) {
	data := map[string]interface{}{
		"title": "current title",
		"body":  "current body",
	}

	t.Run("records only permitted differing values", func(t *testing.T) {
		attrs := map[string]interface{}{
			"title":   "new title",
			"body":    "current body",
			"user_id": "attacker-controlled",
		}

		cs := Cast(data, attrs, "title", "body")

		assert.Equal(t, map[string]interface{}{"title": "new title"}, cs.Changes)
		assert.NotContains(t, cs.Changes, "user_id")
	})

	t.Run("equal values produce an empty diff", func(t *testing.T) {
		cs := Cast(data, map[string]interface{}{"title": "current title"}, "title", "body")

		assert.Empty(t, cs.Changes)
		assert.True(t, cs.Valid())
	})

	t.Run("nil attrs and nil data are tolerated", func(t *testing.T) {
		cs := Cast(nil, nil, "title")

		assert.Empty(t, cs.Changes)
		assert.NotNil(t, cs.Data)
		assert.True(t, cs.Valid())
	})
}

func TestValidateRequired(t *testing.T) {
	t.Run("passes when the effective value is set", func(t *testing.T) {
		cs := Cast(map[string]interface{}{"title": "kept"}, nil, "title").
			ValidateRequired("title")

		assert.True(t, cs.Valid())
	})

	t.Run("fails when a change blanks the value", func(t *testing.T) {
		cs := Cast(map[string]interface{}{"title": "kept"}, map[string]interface{}{"title": ""}, "title").
			ValidateRequired("title")

		assert.False(t, cs.Valid())
		assert.Contains(t, cs.Errors["title"], "is required")
	})

	t.Run("fails on whitespace-only strings", func(t *testing.T) {
		cs := Cast(nil, map[string]interface{}{"title": "   "}, "title").
			ValidateRequired("title")

		assert.False(t, cs.Valid())
	})

	t.Run("fails on missing fields", func(t *testing.T) {
		cs := Cast(nil, nil, "title").ValidateRequired("title")

		assert.False(t, cs.Valid())
		assert.Contains(t, cs.Errors["title"], "is required")
	})
}

func TestValidateLength(t *testing.T) {
	t.Run("passes at the boundary", func(t *testing.T) {
		cs := Cast(nil, map[string]interface{}{"title": "12345"}, "title").
			ValidateLength("title", 5)

		assert.True(t, cs.Valid())
	})

	t.Run("fails past the boundary", func(t *testing.T) {
		cs := Cast(nil, map[string]interface{}{"title": "123456"}, "title").
			ValidateLength("title", 5)

		assert.False(t, cs.Valid())
		assert.Contains(t, cs.Errors["title"], "must be at most 5 characters")
	})

	t.Run("ignores non-string values", func(t *testing.T) {
		cs := Cast(nil, map[string]interface{}{"labels": []string{"a", "b"}}, "labels").
			ValidateLength("labels", 1)

		assert.True(t, cs.Valid())
	})

	t.Run("validates the stored value when no change was cast", func(t *testing.T) {
		cs := Cast(map[string]interface{}{"title": "too long stored title"}, nil, "title").
			ValidateLength("title", 5)

		assert.False(t, cs.Valid())
	})
}

func TestGetChange(t *testing.T) {
	cs := Cast(map[string]interface{}{"title": "old"}, map[string]interface{}{"title": "new"}, "title")

	v, ok := cs.GetChange("title")
	assert.True(t, ok)
	assert.Equal(t, "new", v)

	_, ok = cs.GetChange("body")
	assert.False(t, ok)
}

func TestAddError(t *testing.T) {
	cs := Cast(nil, nil)
	cs.AddError("title", "is duplicated").AddError("title", "is reserved")

	assert.False(t, cs.Valid())
	assert.Equal(t, []string{"is duplicated", "is reserved"}, cs.Errors["title"])
}
