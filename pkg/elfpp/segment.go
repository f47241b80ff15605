package elfpp

import (
	"debug/elf"

	"github.com/Darth-Revan/libelfpp/pkg/utils"
	"github.com/pkg/errors"
)

// Segment is one entry of the program header table together with its byte
// payload and the indices of the sections that lie inside it.
type Segment struct {
	index          int
	typ            elf.ProgType
	flags          elf.ProgFlag
	offset         uint64
	vaddr          uint64
	paddr          uint64
	fileSize       uint64
	memSize        uint64
	align          uint64
	data           []byte
	sectionIndices []int
}

func decodeSegment(contents []byte, hdrOff uint64, class elf.Class, conv *EndianConverter) (*Segment, error) {
	g := &Segment{}

	switch class {
	case elf.ELFCLASS32:
		if hdrOff+elf32PhdrSize > uint64(len(contents)) {
			return nil, errors.Wrapf(ErrTruncated, "program header at offset %d", hdrOff)
		}
		raw, err := utils.Read[elf32Phdr](contents[hdrOff:])
		if err != nil {
			return nil, errors.Wrap(ErrTruncated, err.Error())
		}
		g.typ = elf.ProgType(conv.U32(raw.Type))
		g.flags = elf.ProgFlag(conv.U32(raw.Flags))
		g.offset = uint64(conv.U32(raw.Offset))
		g.vaddr = uint64(conv.U32(raw.Vaddr))
		g.paddr = uint64(conv.U32(raw.Paddr))
		g.fileSize = uint64(conv.U32(raw.Filesz))
		g.memSize = uint64(conv.U32(raw.Memsz))
		g.align = uint64(conv.U32(raw.Align))
	default:
		if hdrOff+elf64PhdrSize > uint64(len(contents)) {
			return nil, errors.Wrapf(ErrTruncated, "program header at offset %d", hdrOff)
		}
		raw, err := utils.Read[elf64Phdr](contents[hdrOff:])
		if err != nil {
			return nil, errors.Wrap(ErrTruncated, err.Error())
		}
		g.typ = elf.ProgType(conv.U32(raw.Type))
		g.flags = elf.ProgFlag(conv.U32(raw.Flags))
		g.offset = conv.U64(raw.Offset)
		g.vaddr = conv.U64(raw.Vaddr)
		g.paddr = conv.U64(raw.Paddr)
		g.fileSize = conv.U64(raw.Filesz)
		g.memSize = conv.U64(raw.Memsz)
		g.align = conv.U64(raw.Align)
	}

	if g.typ != elf.PT_NULL && g.fileSize != 0 {
		end := g.offset + g.fileSize
		if end >= g.offset && end <= uint64(len(contents)) {
			g.data = contents[g.offset:end]
		}
	}

	return g, nil
}

// contains reports whether s lies inside the segment: allocated sections by
// virtual address range, everything else by file offset range.
func (g *Segment) contains(s *Section) bool {
	if s.Flags()&uint64(elf.SHF_ALLOC) != 0 {
		return g.vaddr <= s.Address() && s.Address()+s.Size() <= g.vaddr+g.memSize
	}
	return g.offset <= s.Offset() && s.Offset()+s.Size() <= g.offset+g.fileSize
}

// addSectionIndex appends index to the associated sections unless already
// present. The list stays small, so a linear scan beats a set.
func (g *Segment) addSectionIndex(index int) {
	for _, have := range g.sectionIndices {
		if have == index {
			return
		}
	}
	g.sectionIndices = append(g.sectionIndices, index)
}

// Index returns the segment's position in the program header table.
func (g *Segment) Index() int { return g.index }

// Type returns the segment type.
func (g *Segment) Type() elf.ProgType { return g.typ }

// TypeString returns the segment type as a printable token.
func (g *Segment) TypeString() string { return segmentTypeString(g.typ) }

// Flags returns the segment flags word.
func (g *Segment) Flags() elf.ProgFlag { return g.flags }

// FlagsString returns the R, W and X flag characters for the set bits.
func (g *Segment) FlagsString() string {
	var out []byte
	if g.flags&elf.PF_R != 0 {
		out = append(out, 'R')
	}
	if g.flags&elf.PF_W != 0 {
		out = append(out, 'W')
	}
	if g.flags&elf.PF_X != 0 {
		out = append(out, 'X')
	}
	return string(out)
}

// Offset returns the segment's file offset.
func (g *Segment) Offset() uint64 { return g.offset }

// VirtualAddress returns the segment's virtual load address.
func (g *Segment) VirtualAddress() uint64 { return g.vaddr }

// PhysicalAddress returns the segment's physical load address.
func (g *Segment) PhysicalAddress() uint64 { return g.paddr }

// FileSize returns the number of bytes the segment occupies in the file.
func (g *Segment) FileSize() uint64 { return g.fileSize }

// MemorySize returns the number of bytes the segment occupies in memory.
func (g *Segment) MemorySize() uint64 { return g.memSize }

// AddressAlignment returns the segment's alignment constraint.
func (g *Segment) AddressAlignment() uint64 { return g.align }

// Data returns the segment's byte payload, fileSize bytes verbatim. It must
// not be modified.
func (g *Segment) Data() []byte { return g.data }

// DataString returns the payload as a string.
func (g *Segment) DataString() string { return string(g.data) }

// SectionNumber returns the number of sections associated with the segment.
func (g *Segment) SectionNumber() int { return len(g.sectionIndices) }

// AssociatedSections returns the indices of the sections lying inside the
// segment, deduplicated, in section table order.
func (g *Segment) AssociatedSections() []int { return g.sectionIndices }
