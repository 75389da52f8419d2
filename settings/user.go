package settings

// Type codes reported across the boundary for a user setting's kind.
const (
	TypeOther uint = 0
	TypeBool  uint = 1
)

// Kind describes what a user setting is. It is one of BoolKind or TitleKind.
type Kind interface {
	// TypeCode returns TypeBool for boolean settings and TypeOther otherwise.
	TypeCode() uint
}

// BoolKind is a toggle with a declared default.
type BoolKind struct {
	Default bool
}

func (BoolKind) TypeCode() uint { return TypeBool }

// TitleKind is a heading used to group the settings that follow it.
type TitleKind struct {
	HeadingLevel uint32
}

func (TitleKind) TypeCode() uint { return TypeOther }

// UserSetting is a setting declared by a script.
type UserSetting struct {
	Kind        Kind
	Key         string
	Description string
	Tooltip     string
}

// ResolveBool returns the effective boolean value of setting: the value
// stored under its key if present and boolean, else its declared default.
// Settings that are not boolean resolve to false.
func ResolveBool(setting UserSetting, store *Store) bool {
	kind, ok := setting.Kind.(BoolKind)
	if !ok {
		return false
	}
	if store != nil {
		if v, ok := store.Bool(setting.Key); ok {
			return v
		}
	}
	return kind.Default
}
