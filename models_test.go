package erniechat

import (
	"sort"
	"testing"

	. "github.com/stevegt/goadapt"
)

func TestFindModel(t *testing.T) {
	models := NewModels()

	// empty name falls back to the default model
	name, m, err := models.FindModel("")
	Tassert(t, err == nil, "FindModel returned unexpected error: %v", err)
	Tassert(t, name == DefaultModel, "unexpected name: %s", name)
	Tassert(t, m.TokenLimit > 0, "unexpected token limit: %d", m.TokenLimit)

	name, m, err = models.FindModel("ernie-speed-128k")
	Tassert(t, err == nil, "FindModel returned unexpected error: %v", err)
	Tassert(t, name == "ernie-speed-128k", "unexpected name: %s", name)
	Tassert(t, m.TokenLimit == 131072, "unexpected token limit: %d", m.TokenLimit)

	_, _, err = models.FindModel("gpt-4")
	Tassert(t, err != nil, "expected error for unknown model")
}

func TestListModels(t *testing.T) {
	models := NewModels()
	list := models.ListModels()
	Tassert(t, len(list) == len(models.Available), "unexpected list length: %d", len(list))
	sorted := sort.SliceIsSorted(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	Tassert(t, sorted, "list not sorted: %v", list)
}
