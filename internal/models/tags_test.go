package models

import (
	"reflect"
	"testing"
)

func TestStringListValue(t *testing.T) {
	v, err := StringList{"backend", "urgent"}.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != `["backend","urgent"]` {
		t.Errorf("unexpected serialization: %v", v)
	}

	// nil сериализуется как пустой массив, не как null
	v, err = StringList(nil).Value()
	if err != nil {
		t.Fatalf("Value(nil): %v", err)
	}
	if v != `[]` {
		t.Errorf("nil list: expected [], got %v", v)
	}
}

func TestStringListScan(t *testing.T) {
	cases := []struct {
		name string
		src  interface{}
		want StringList
	}{
		{"string", `["a","b"]`, StringList{"a", "b"}},
		{"bytes", []byte(`["a"]`), StringList{"a"}},
		{"empty string", "", StringList{}},
		{"nil", nil, StringList{}},
	}
	for _, tc := range cases {
		var got StringList
		if err := got.Scan(tc.src); err != nil {
			t.Errorf("%s: Scan: %v", tc.name, err)
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}

	var got StringList
	if err := got.Scan(42); err == nil {
		t.Errorf("Scan(int): expected error")
	}
}
