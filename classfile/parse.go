package classfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"unicode/utf16"
)

type reader struct {
	r   io.Reader
	err error
	buf [8]byte
}

func (r *reader) fill(n int) []byte {
	if r.err != nil {
		return r.buf[:n]
	}
	_, r.err = io.ReadFull(r.r, r.buf[:n])
	return r.buf[:n]
}

func (r *reader) u1() uint8  { return r.fill(1)[0] }
func (r *reader) u2() uint16 { return binary.BigEndian.Uint16(r.fill(2)) }
func (r *reader) u4() uint32 { return binary.BigEndian.Uint32(r.fill(4)) }
func (r *reader) u8() uint64 { return binary.BigEndian.Uint64(r.fill(8)) }

func (r *reader) bytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	b := make([]byte, n)
	_, r.err = io.ReadFull(r.r, b)
	return b
}

func ParseFile(path string) (*ClassFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open class file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func Parse(rd io.Reader) (*ClassFile, error) {
	r := &reader{r: rd}

	magic := r.u4()
	if r.err != nil {
		return nil, fmt.Errorf("read magic: %w", r.err)
	}
	if magic != Magic {
		return nil, fmt.Errorf("invalid magic number: 0x%X (expected 0xCAFEBABE)", magic)
	}

	cf := &ClassFile{}
	cf.MinorVersion = r.u2()
	cf.MajorVersion = r.u2()
	if r.err != nil {
		return nil, fmt.Errorf("read version: %w", r.err)
	}

	pool, err := readConstantPool(r)
	if err != nil {
		return nil, err
	}
	cf.Pool = pool

	cf.AccessFlags = AccessFlags(r.u2())
	cf.ThisClass = r.u2()
	cf.SuperClass = r.u2()
	count := int(r.u2())
	for i := 0; i < count; i++ {
		cf.Interfaces = append(cf.Interfaces, r.u2())
	}
	if r.err != nil {
		return nil, fmt.Errorf("read class header: %w", r.err)
	}

	if cf.Fields, err = readMembers(r, pool); err != nil {
		return nil, fmt.Errorf("read fields: %w", err)
	}
	if cf.Methods, err = readMembers(r, pool); err != nil {
		return nil, fmt.Errorf("read methods: %w", err)
	}
	if cf.Attributes, err = readAttributes(r, pool); err != nil {
		return nil, fmt.Errorf("read class attributes: %w", err)
	}
	return cf, nil
}

func readConstantPool(r *reader) (ConstantPool, error) {
	count := r.u2()
	if r.err != nil {
		return nil, fmt.Errorf("read constant pool count: %w", r.err)
	}
	pool := make(ConstantPool, count)
	for i := uint16(1); i < count; i++ {
		c := &Constant{Tag: ConstantTag(r.u1())}
		switch c.Tag {
		case ConstantUtf8:
			n := int(r.u2())
			c.Text = decodeModifiedUTF8(r.bytes(n))
		case ConstantInteger:
			c.Int = int64(int32(r.u4()))
		case ConstantFloat:
			c.Float = float64(math.Float32frombits(r.u4()))
		case ConstantLong:
			c.Int = int64(r.u8())
		case ConstantDouble:
			c.Float = math.Float64frombits(r.u8())
		case ConstantClass, ConstantString, ConstantMethodType, ConstantModule, ConstantPackage:
			c.Ref1 = r.u2()
		case ConstantFieldref, ConstantMethodref, ConstantInterfaceMethodref,
			ConstantNameAndType, ConstantDynamic, ConstantInvokeDynamic:
			c.Ref1 = r.u2()
			c.Ref2 = r.u2()
		case ConstantMethodHandle:
			c.Ref1 = uint16(r.u1())
			c.Ref2 = r.u2()
		default:
			if r.err == nil {
				return nil, fmt.Errorf("constant pool entry %d: unknown tag %d", i, c.Tag)
			}
		}
		if r.err != nil {
			return nil, fmt.Errorf("read constant pool entry %d: %w", i, r.err)
		}
		pool[i] = c
		if c.Tag == ConstantLong || c.Tag == ConstantDouble {
			i++
		}
	}
	return pool, nil
}

func readMembers(r *reader, pool ConstantPool) ([]Member, error) {
	count := int(r.u2())
	if r.err != nil {
		return nil, r.err
	}
	members := make([]Member, count)
	for i := range members {
		members[i].AccessFlags = AccessFlags(r.u2())
		members[i].Name = pool.Utf8(r.u2())
		members[i].Descriptor = pool.Utf8(r.u2())
		attrs, err := readAttributes(r, pool)
		if err != nil {
			return nil, fmt.Errorf("member %d: %w", i, err)
		}
		members[i].Attributes = attrs
	}
	return members, nil
}

func readAttributes(r *reader, pool ConstantPool) ([]Attribute, error) {
	count := int(r.u2())
	var attrs []Attribute
	for i := 0; i < count; i++ {
		name := pool.Utf8(r.u2())
		length := r.u4()
		data := r.bytes(int(length))
		if r.err != nil {
			return nil, fmt.Errorf("attribute %d: %w", i, r.err)
		}
		attrs = append(attrs, Attribute{Name: name, Data: data})
	}
	return attrs, r.err
}

// decodeModifiedUTF8 decodes the JVM's variant of UTF-8, in which NUL is
// encoded on two bytes and supplementary characters as surrogate pairs.
func decodeModifiedUTF8(b []byte) string {
	units := make([]uint16, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c&0x80 == 0:
			units = append(units, uint16(c))
			i++
		case c&0xE0 == 0xC0 && i+1 < len(b):
			units = append(units, uint16(c&0x1F)<<6|uint16(b[i+1]&0x3F))
			i += 2
		case c&0xF0 == 0xE0 && i+2 < len(b):
			units = append(units, uint16(c&0x0F)<<12|uint16(b[i+1]&0x3F)<<6|uint16(b[i+2]&0x3F))
			i += 3
		default:
			units = append(units, 0xFFFD)
			i++
		}
	}
	return string(utf16.Decode(units))
}
