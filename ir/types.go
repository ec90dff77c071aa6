package ir

// Type represents a type in the IR.
type Type struct {
	Name  string
	Inner TypeInner
}

// TypeInner represents the inner type kind.
type TypeInner interface {
	typeInner()
}

// ScalarType represents scalar types.
type ScalarType struct {
	Kind  ScalarKind
	Width uint8 // in bytes
}

func (ScalarType) typeInner() {}

// ScalarKind represents scalar type kinds.
type ScalarKind uint8

const (
	ScalarSint  ScalarKind = iota // Signed integer
	ScalarUint                    // Unsigned integer
	ScalarFloat                   // Floating point
	ScalarBool                    // Boolean
)

// VectorType represents fixed-width vector types.
type VectorType struct {
	Size   VectorSize
	Scalar ScalarType
}

func (VectorType) typeInner() {}

// FirstElement returns the vector's scalar type. It always succeeds.
func (t VectorType) FirstElement(reg *TypeRegistry) (TypeHandle, bool) {
	return reg.GetOrCreate("", t.Scalar), true
}

// VectorSize represents vector sizes.
type VectorSize uint8

const (
	Vec2 VectorSize = 2
	Vec3 VectorSize = 3
	Vec4 VectorSize = 4
)

// MatrixType represents matrix types.
type MatrixType struct {
	Columns VectorSize
	Rows    VectorSize
	Scalar  ScalarType
}

func (MatrixType) typeInner() {}

// ArrayType represents array types. Size.Constant is nil for
// runtime-sized arrays.
type ArrayType struct {
	Base   TypeHandle
	Size   ArraySize
	Stride uint32
}

func (ArrayType) typeInner() {}

// FirstElement returns the array's element type. It always succeeds.
func (t ArrayType) FirstElement(reg *TypeRegistry) (TypeHandle, bool) {
	return t.Base, true
}

// Runtime reports whether the array is runtime-sized.
func (t ArrayType) Runtime() bool {
	return t.Size.Constant == nil
}

// ArraySize represents array size.
type ArraySize struct {
	Constant *uint32 // nil for runtime-sized arrays
}

// StructType represents record types.
type StructType struct {
	Members []StructMember
	Span    uint32 // Size in bytes
}

func (StructType) typeInner() {}

// FirstElement returns the type of the struct's first member. It fails on
// an empty struct.
func (t StructType) FirstElement(reg *TypeRegistry) (TypeHandle, bool) {
	if len(t.Members) == 0 {
		return 0, false
	}
	return t.Members[0].Type, true
}

// StructMember represents a struct member.
type StructMember struct {
	Name   string
	Type   TypeHandle
	Offset uint32
}

// PointerType represents pointer types. The pointee type is retained in
// the IR even though the target representation erases it; passes use it
// when reconciling elided addressing steps.
type PointerType struct {
	Base  TypeHandle
	Space AddressSpace
}

func (PointerType) typeInner() {}

// SamplerType represents sampler types.
type SamplerType struct {
	Comparison bool
}

func (SamplerType) typeInner() {}

// ImageType represents image/texture types.
type ImageType struct {
	Dim     ImageDimension
	Arrayed bool
	Class   ImageClass
}

func (ImageType) typeInner() {}

// ImageDimension represents image dimensions.
type ImageDimension uint8

const (
	Dim1D ImageDimension = iota
	Dim2D
	Dim3D
	DimCube
)

// ImageClass represents image classification.
type ImageClass uint8

const (
	ImageClassSampled ImageClass = iota
	ImageClassDepth
	ImageClassStorage
)
