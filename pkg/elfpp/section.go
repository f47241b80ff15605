package elfpp

import (
	"debug/elf"

	"github.com/Darth-Revan/libelfpp/pkg/utils"
	"github.com/pkg/errors"
)

// Section is one entry of the section header table together with its byte
// payload. Fields are host-order and widened at decode time; the name is
// resolved against the section header string table after all sections are
// loaded.
type Section struct {
	index      int
	name       string
	nameOffset uint32
	typ        elf.SectionType
	flags      uint64
	addr       uint64
	offset     uint64
	size       uint64
	link       uint32
	info       uint32
	addrAlign  uint64
	entSize    uint64
	data       []byte
}

// decodeSection reads the section header at hdrOff and, unless the section
// is SHT_NULL or SHT_NOBITS, slices its payload out of contents. A payload
// range outside the image leaves the payload empty; the caller decides how
// to report it.
func decodeSection(contents []byte, hdrOff uint64, class elf.Class, conv *EndianConverter) (*Section, error) {
	s := &Section{}

	switch class {
	case elf.ELFCLASS32:
		if hdrOff+elf32ShdrSize > uint64(len(contents)) {
			return nil, errors.Wrapf(ErrTruncated, "section header at offset %d", hdrOff)
		}
		raw, err := utils.Read[elf32Shdr](contents[hdrOff:])
		if err != nil {
			return nil, errors.Wrap(ErrTruncated, err.Error())
		}
		s.nameOffset = conv.U32(raw.Name)
		s.typ = elf.SectionType(conv.U32(raw.Type))
		s.flags = uint64(conv.U32(raw.Flags))
		s.addr = uint64(conv.U32(raw.Addr))
		s.offset = uint64(conv.U32(raw.Offset))
		s.size = uint64(conv.U32(raw.Size))
		s.link = conv.U32(raw.Link)
		s.info = conv.U32(raw.Info)
		s.addrAlign = uint64(conv.U32(raw.Addralign))
		s.entSize = uint64(conv.U32(raw.Entsize))
	default:
		if hdrOff+elf64ShdrSize > uint64(len(contents)) {
			return nil, errors.Wrapf(ErrTruncated, "section header at offset %d", hdrOff)
		}
		raw, err := utils.Read[elf64Shdr](contents[hdrOff:])
		if err != nil {
			return nil, errors.Wrap(ErrTruncated, err.Error())
		}
		s.nameOffset = conv.U32(raw.Name)
		s.typ = elf.SectionType(conv.U32(raw.Type))
		s.flags = conv.U64(raw.Flags)
		s.addr = conv.U64(raw.Addr)
		s.offset = conv.U64(raw.Offset)
		s.size = conv.U64(raw.Size)
		s.link = conv.U32(raw.Link)
		s.info = conv.U32(raw.Info)
		s.addrAlign = conv.U64(raw.Addralign)
		s.entSize = conv.U64(raw.Entsize)
	}

	if s.typ != elf.SHT_NULL && s.typ != elf.SHT_NOBITS && s.size != 0 {
		end := s.offset + s.size
		if end >= s.offset && end <= uint64(len(contents)) {
			s.data = contents[s.offset:end]
		}
	}

	return s, nil
}

// Index returns the section's position in the section header table.
func (s *Section) Index() int { return s.index }

// Name returns the section's name, or the empty string when the file has no
// valid section header string table.
func (s *Section) Name() string { return s.name }

// NameStringOffset returns the raw offset of the section's name in the
// section header string table.
func (s *Section) NameStringOffset() uint32 { return s.nameOffset }

// Type returns the section type.
func (s *Section) Type() elf.SectionType { return s.typ }

// TypeString returns the section type as a printable token.
func (s *Section) TypeString() string { return sectionTypeString(s.typ) }

// Flags returns the section flags word.
func (s *Section) Flags() uint64 { return s.flags }

// FlagsString returns one character per known set flag in the canonical
// token order W A X M S I L G T E l O o p (e.g. a writable, allocated
// section yields "WA").
func (s *Section) FlagsString() string {
	var out []byte
	for _, fc := range sectionFlagChars {
		if s.flags&fc.mask == fc.mask {
			out = append(out, fc.ch)
		}
	}
	return string(out)
}

// Address returns the virtual address of the section, or zero for sections
// that do not occupy memory.
func (s *Section) Address() uint64 { return s.addr }

// Offset returns the section's file offset.
func (s *Section) Offset() uint64 { return s.offset }

// Size returns the section's size in bytes.
func (s *Section) Size() uint64 { return s.size }

// Link returns the sh_link field; its meaning depends on the section type.
func (s *Section) Link() uint32 { return s.link }

// Info returns the sh_info field; its meaning depends on the section type.
func (s *Section) Info() uint32 { return s.info }

// AddressAlignment returns the section's address alignment constraint.
func (s *Section) AddressAlignment() uint64 { return s.addrAlign }

// EntrySize returns the size of one entry for table-like sections, zero
// otherwise.
func (s *Section) EntrySize() uint64 { return s.entSize }

// Data returns the section's byte payload. It is empty for SHT_NULL and
// SHT_NOBITS sections and must not be modified.
func (s *Section) Data() []byte { return s.data }

// DataString returns the payload as a string.
func (s *Section) DataString() string { return string(s.data) }
