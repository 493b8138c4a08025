package expect

import (
	"reflect"
	"sync"
	"testing"

	"github.com/sirkon/typeexpect/internal/exprules"
)

func TestCollectorConcurrentAdds(t *testing.T) {
	collector := NewCollector()

	var wg sync.WaitGroup
	names := []string{"a.go", "b.go", "c.go"}
	for _, name := range names {
		wg.Add(1)
		go func() {
			defer wg.Done()
			collector.Add(name, Failure{
				Rule:    exprules.TypeMismatch(),
				Message: "from " + name,
			})
		}()
	}
	wg.Wait()

	if !reflect.DeepEqual(names, collector.Files()) {
		t.Fatalf("files %v were expected, got %v", names, collector.Files())
	}
	if collector.Total() != len(names) {
		t.Fatalf("%d failures were expected, got %d", len(names), collector.Total())
	}
	for _, name := range names {
		failures := collector.File(name)
		if len(failures) != 1 || failures[0].Message != "from "+name {
			t.Fatalf("one failure attributed to %s was expected, got %v", name, failures)
		}
	}
}

func TestCollectorRecordsCleanFiles(t *testing.T) {
	collector := NewCollector()
	collector.Add("clean.go")

	if !reflect.DeepEqual([]string{"clean.go"}, collector.Files()) {
		t.Fatalf("the clean file must still be recorded, got %v", collector.Files())
	}
	if collector.Total() != 0 {
		t.Fatalf("no failures were expected, got %d", collector.Total())
	}
}
