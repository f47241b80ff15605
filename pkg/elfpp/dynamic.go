package elfpp

import (
	"debug/elf"

	"github.com/Darth-Revan/libelfpp/pkg/utils"
)

// DynamicEntry is one (tag, value) pair of the dynamic section. Depending on
// the tag the value is an integer, a virtual address, or zero by definition.
type DynamicEntry struct {
	Tag   elf.DynTag
	Value uint64
}

// TagString returns the tag's printable token, or the empty string for tags
// outside the known set.
func (e DynamicEntry) TagString() string {
	return dynamicTagStrings[e.Tag]
}

// DynamicSection interprets a section payload as the dynamic linking table.
type DynamicSection struct {
	*Section
	entries []DynamicEntry
}

func newDynamicSection(s *Section, class elf.Class, conv *EndianConverter) *DynamicSection {
	d := &DynamicSection{Section: s}

	count := d.headerEntryCount()
	d.entries = make([]DynamicEntry, 0, count)
	for i := uint64(0); i < count; i++ {
		var tag elf.DynTag
		var val uint64

		rec := s.data[i*s.entSize:]
		switch class {
		case elf.ELFCLASS32:
			raw, err := utils.Read[elf32Dyn](rec)
			if err != nil {
				continue
			}
			tag = elf.DynTag(conv.I32(raw.Tag))
			val = uint64(conv.U32(raw.Val))
		default:
			raw, err := utils.Read[elf64Dyn](rec)
			if err != nil {
				continue
			}
			tag = elf.DynTag(conv.I64(raw.Tag))
			val = conv.U64(raw.Val)
		}

		// Tags that carry no value read as zero. The d_val tags (NEEDED,
		// PLTRELSZ, RELASZ, RELAENT, STRSZ, SYMENT, SONAME, RPATH, RELSZ,
		// RELENT, PLTREL, INIT_ARRAYSZ, FINI_ARRAYSZ, RUNPATH, FLAGS,
		// PREINIT_ARRAYSZ) and the d_ptr tags share one representation once
		// widened to 64 bits.
		switch tag {
		case elf.DT_NULL, elf.DT_SYMBOLIC, elf.DT_TEXTREL, elf.DT_BIND_NOW:
			val = 0
		}

		d.entries = append(d.entries, DynamicEntry{Tag: tag, Value: val})
	}

	return d
}

// headerEntryCount derives the entry count from the header's size and entry
// size, capped at the number of complete records the payload holds.
func (d *DynamicSection) headerEntryCount() uint64 {
	if d.entSize == 0 {
		return 0
	}
	count := d.size / d.entSize
	if max := uint64(len(d.data)) / d.entSize; count > max {
		count = max
	}
	return count
}

// NumEntries returns the number of entries in the dynamic section.
func (d *DynamicSection) NumEntries() uint64 {
	return uint64(len(d.entries))
}

// Entry returns the entry at index i. The second return value is false when
// i is out of range.
func (d *DynamicSection) Entry(i uint64) (DynamicEntry, bool) {
	if i >= uint64(len(d.entries)) {
		return DynamicEntry{}, false
	}
	return d.entries[i], true
}

// Entries returns all entries in table order. The returned slice must not be
// modified.
func (d *DynamicSection) Entries() []DynamicEntry {
	return d.entries
}
