package settings

import (
	"slices"
	"testing"
)

func TestStore_SetBool(t *testing.T) {
	s := NewStore()
	if s.Len() != 0 {
		t.Fatalf("new store Len() = %d", s.Len())
	}

	s.SetBool("split_on_boss", true)
	v, ok := s.Bool("split_on_boss")
	if !ok || !v {
		t.Fatalf("Bool() = %v, %v; want true, true", v, ok)
	}

	// last write wins
	s.SetBool("split_on_boss", false)
	v, ok = s.Bool("split_on_boss")
	if !ok || v {
		t.Fatalf("after overwrite Bool() = %v, %v; want false, true", v, ok)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestStore_MissingAndEmptyKey(t *testing.T) {
	s := NewStore()
	if _, ok := s.Bool("nope"); ok {
		t.Error("missing key should not be found")
	}
	if _, ok := s.Get("nope"); ok {
		t.Error("missing key should not be found")
	}

	s.SetBool("", true)
	if v, ok := s.Bool(""); !ok || !v {
		t.Error("empty key is a valid key")
	}
}

func TestStore_NonBoolValue(t *testing.T) {
	s := NewStore()
	s.Set("odd", Value{})
	if _, ok := s.Bool("odd"); ok {
		t.Error("zero Value should not read as bool")
	}
	v, ok := s.Get("odd")
	if !ok || v.Kind() == ValueBool {
		t.Errorf("Get() = %+v, %v", v, ok)
	}
}

func TestStore_KeysAndClone(t *testing.T) {
	s := NewStore()
	s.SetBool("b", true)
	s.SetBool("a", false)
	s.SetBool("c", true)

	if got := s.Keys(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("Keys() = %v", got)
	}

	c := s.Clone()
	c.SetBool("a", true)
	if v, _ := s.Bool("a"); v {
		t.Error("Clone shares storage with original")
	}
}

func TestResolveBool(t *testing.T) {
	store := NewStore()
	store.SetBool("stored_false", false)
	store.SetBool("stored_true", true)
	store.Set("stored_other", Value{})
	store.SetBool("title", true)

	tests := []struct {
		name    string
		setting UserSetting
		store   *Store
		want    bool
	}{
		{"default true, nothing stored", UserSetting{Key: "missing", Kind: BoolKind{Default: true}}, store, true},
		{"default false, nothing stored", UserSetting{Key: "missing", Kind: BoolKind{Default: false}}, store, false},
		{"stored false beats default true", UserSetting{Key: "stored_false", Kind: BoolKind{Default: true}}, store, false},
		{"stored true beats default false", UserSetting{Key: "stored_true", Kind: BoolKind{Default: false}}, store, true},
		{"non-bool stored value falls back to default", UserSetting{Key: "stored_other", Kind: BoolKind{Default: true}}, store, true},
		{"title is false even if stored true", UserSetting{Key: "title", Kind: TitleKind{HeadingLevel: 1}}, store, false},
		{"nil kind is false", UserSetting{Key: "stored_true"}, store, false},
		{"nil store uses default", UserSetting{Key: "x", Kind: BoolKind{Default: true}}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveBool(tt.setting, tt.store); got != tt.want {
				t.Errorf("ResolveBool() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKind_TypeCode(t *testing.T) {
	if (BoolKind{}).TypeCode() != TypeBool {
		t.Error("BoolKind should report TypeBool")
	}
	if (TitleKind{}).TypeCode() != TypeOther {
		t.Error("TitleKind should report TypeOther")
	}
}
