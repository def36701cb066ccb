package classfile

// Constant is one constant pool slot. Which fields are meaningful depends
// on Tag: Utf8 carries Text, numeric constants carry Int or Float, and every
// reference kind carries its indices in Ref1 and Ref2.
type Constant struct {
	Tag   ConstantTag
	Text  string
	Int   int64
	Float float64
	Ref1  uint16
	Ref2  uint16
}

// ConstantPool is indexed the same way the class file is: slot 0 is unused
// and the slot after a Long or Double is nil.
type ConstantPool []*Constant

func (cp ConstantPool) At(index uint16) *Constant {
	if index == 0 || int(index) >= len(cp) {
		return nil
	}
	return cp[index]
}

func (cp ConstantPool) Utf8(index uint16) string {
	c := cp.At(index)
	if c == nil || c.Tag != ConstantUtf8 {
		return ""
	}
	return c.Text
}

// ClassName returns the internal name referenced by a Class constant.
func (cp ConstantPool) ClassName(index uint16) string {
	c := cp.At(index)
	if c == nil || c.Tag != ConstantClass {
		return ""
	}
	return cp.Utf8(c.Ref1)
}

// Value returns the Go value of a loadable constant, or nil.
func (cp ConstantPool) Value(index uint16) any {
	c := cp.At(index)
	if c == nil {
		return nil
	}
	switch c.Tag {
	case ConstantInteger:
		return int32(c.Int)
	case ConstantLong:
		return c.Int
	case ConstantFloat:
		return float32(c.Float)
	case ConstantDouble:
		return c.Float
	case ConstantString:
		return cp.Utf8(c.Ref1)
	case ConstantUtf8:
		return c.Text
	}
	return nil
}
