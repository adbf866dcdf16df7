package erniechat

import (
	"fmt"
	"sort"
)

// DefaultModel is used when no model name is given.
var DefaultModel = "ernie-3.5-8k"

// Model is a type for model name and characteristics.
type Model struct {
	Name       string
	TokenLimit int
}

func (m *Model) String() string {
	return fmt.Sprintf("%-22s tokens: %d", m.Name, m.TokenLimit)
}

// Models is a type that manages the set of known ERNIE models.
type Models struct {
	Available map[string]*Model
}

// NewModels creates a new Models object.
// Model list: https://cloud.baidu.com/doc/WENXINWORKSHOP/s/Fm2vrveyu
func NewModels() (models *Models) {
	models = &Models{}
	models.Available = make(map[string]*Model)
	add := func(name string, tokenLimit int) {
		models.Available[name] = &Model{
			Name:       name,
			TokenLimit: tokenLimit,
		}
	}

	add("ernie-3.5-8k", 8192)
	add("ernie-3.5-128k", 131072)
	add("ernie-4.0-8k", 8192)
	add("ernie-4.0-turbo-8k", 8192)
	add("ernie-4.0-turbo-128k", 131072)
	add("ernie-speed-8k", 8192)
	add("ernie-speed-128k", 131072)
	add("ernie-lite-8k", 8192)
	add("ernie-tiny-8k", 8192)
	add("ernie-char-8k", 8192)

	return
}

// FindModel returns the model name and object given a model name.
// If the given model name is empty, then use DefaultModel.  The list
// of known models is advisory; the remote service is the authority on
// which model names are valid.
func (models *Models) FindModel(model string) (name string, m *Model, err error) {
	if model == "" {
		model = DefaultModel
	}
	m, ok := models.Available[model]
	if !ok {
		err = fmt.Errorf("model %q not found", model)
		return
	}
	name = model
	return
}

// ListModels returns a list of known models sorted by name.
func (models *Models) ListModels() (list []*Model) {
	for _, m := range models.Available {
		list = append(list, m)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return
}
