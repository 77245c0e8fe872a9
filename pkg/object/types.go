package object

import "fmt"

// ObjectType identifies the kind of object stored. The numeric values are
// the 3-bit type codes used by the packed loose-object header, so the same
// value serves both physical encodings. The zero value is not a valid type.
type ObjectType uint8

const (
	TypeCommit ObjectType = 1
	TypeTree   ObjectType = 2
	TypeBlob   ObjectType = 3
	TypeTag    ObjectType = 4
)

// typeNames is the canonical name table; index is the type code.
var typeNames = [...]string{
	TypeCommit: "commit",
	TypeTree:   "tree",
	TypeBlob:   "blob",
	TypeTag:    "tag",
}

// Valid reports whether t is one of the four object types.
func (t ObjectType) Valid() bool {
	return t >= TypeCommit && t <= TypeTag
}

func (t ObjectType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
	return typeNames[t]
}

// ParseObjectType maps a canonical type name ("blob", "tree", "commit",
// "tag") to its ObjectType.
func ParseObjectType(name string) (ObjectType, error) {
	switch name {
	case "commit":
		return TypeCommit, nil
	case "tree":
		return TypeTree, nil
	case "blob":
		return TypeBlob, nil
	case "tag":
		return TypeTag, nil
	}
	return 0, fmt.Errorf("%w: unknown object type %q", ErrInvalidInput, name)
}

// RawObject is a decoded loose object: its type and uninterpreted content.
type RawObject struct {
	Type ObjectType
	Data []byte
}

// Size returns the content length in bytes.
func (o *RawObject) Size() int64 {
	return int64(len(o.Data))
}
