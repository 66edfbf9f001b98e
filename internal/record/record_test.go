package record

import (
	"encoding/json"
	"testing"
)

func TestSetReplacesInPlace(t *testing.T) {
	f := Of("label", "regular", "name", "ghz", "n_qubits", 3)
	f.Set("name", "dj")
	f.Set("final_nodecount", 4)

	keys := f.Keys()
	want := []string{"label", "name", "n_qubits", "final_nodecount"}
	if len(keys) != len(want) {
		t.Fatalf("expected %d keys, got %v", len(want), keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("key %d: expected %q, got %q", i, want[i], keys[i])
		}
	}
	if v, _ := f.Get("name"); v != "dj" {
		t.Fatalf("expected name to be replaced, got %v", v)
	}
}

func TestJSONPreservesOrder(t *testing.T) {
	f := Of("z", 1, "a", "two", "m", 3.5)
	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"z":1,"a":"two","m":3.5}` {
		t.Fatalf("unexpected json %s", data)
	}

	var decoded Fields
	if err := json.Unmarshal([]byte(`{"b":2,"a":1.25,"c":{"x":1}}`), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if keys := decoded.Keys(); keys[0] != "b" || keys[1] != "a" || keys[2] != "c" {
		t.Fatalf("unexpected key order %v", keys)
	}
	if v, _ := decoded.Get("b"); v != int64(2) {
		t.Fatalf("expected int64 2, got %T %v", v, v)
	}
	if v, _ := decoded.Get("a"); v != 1.25 {
		t.Fatalf("expected 1.25, got %v", v)
	}
}

func TestUnmarshalRejectsNonObject(t *testing.T) {
	var decoded Fields
	if err := json.Unmarshal([]byte(`[1,2]`), &decoded); err == nil {
		t.Fatalf("expected error for array input")
	}
}
