package classpath

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/dhamidi/jcm/format"
	"github.com/dhamidi/jcm/java"
)

//go:embed bootstrap.txt
var bootstrapTable string

var bootstrapOnce = sync.OnceValue(func() map[string]*java.ClassModel {
	models, err := format.DecodeAll(strings.NewReader(bootstrapTable))
	if err != nil {
		panic("classpath: malformed bootstrap table: " + err.Error())
	}
	table := make(map[string]*java.ClassModel, len(models))
	for _, m := range models {
		table[m.Name] = m
	}
	return table
})

// Bootstrap returns the built-in models of core JDK types, keyed by binary
// name. The returned map is shared and must not be modified.
func Bootstrap() map[string]*java.ClassModel {
	return bootstrapOnce()
}

type bootstrapLoader struct{}

// BootstrapLoader returns a Loader that knows only the built-in table.
func BootstrapLoader() Loader { return bootstrapLoader{} }

func (bootstrapLoader) Load(name string) (*java.ClassModel, error) {
	if m, ok := Bootstrap()[name]; ok {
		return m, nil
	}
	return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
}
