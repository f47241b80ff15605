package elfpp

import (
	"debug/elf"

	"github.com/Darth-Revan/libelfpp/pkg/utils"
)

// RelocationEntry is one decoded relocation record. Symbol is the resolved
// symbol the entry's info field refers to, fetched once at decode time; it
// is nil when the symbol index is out of range. Addend is zero for tables
// without addends.
type RelocationEntry struct {
	Offset      uint64
	Info        uint64
	Type        uint32
	SymbolIndex uint32
	Addend      int64
	Symbol      *Symbol
}

// RelocationSection interprets a section payload as a relocation table,
// with or without addends depending on the section type.
type RelocationSection struct {
	*Section
	symbols *SymbolSection
	entries []RelocationEntry
}

func newRelocationSection(s *Section, symbols *SymbolSection, class elf.Class, conv *EndianConverter) *RelocationSection {
	r := &RelocationSection{Section: s, symbols: symbols}
	withAddend := s.typ == elf.SHT_RELA

	if s.entSize == 0 {
		return r
	}
	count := uint64(len(s.data)) / s.entSize
	r.entries = make([]RelocationEntry, 0, count)

	for i := uint64(0); i < count; i++ {
		rec := s.data[i*s.entSize:]
		var entry RelocationEntry

		// The sym/type split of the info field is the one place the class
		// still matters after decode: low byte vs low 32 bits for the type,
		// the rest for the symbol index.
		switch class {
		case elf.ELFCLASS32:
			if withAddend {
				raw, err := utils.Read[elf32Rela](rec)
				if err != nil {
					continue
				}
				entry.Offset = uint64(conv.U32(raw.Offset))
				entry.Info = uint64(conv.U32(raw.Info))
				entry.Addend = int64(conv.I32(raw.Addend))
			} else {
				raw, err := utils.Read[elf32Rel](rec)
				if err != nil {
					continue
				}
				entry.Offset = uint64(conv.U32(raw.Offset))
				entry.Info = uint64(conv.U32(raw.Info))
			}
			entry.SymbolIndex = uint32(entry.Info >> 8)
			entry.Type = uint32(entry.Info & 0xff)
		default:
			if withAddend {
				raw, err := utils.Read[elf64Rela](rec)
				if err != nil {
					continue
				}
				entry.Offset = conv.U64(raw.Offset)
				entry.Info = conv.U64(raw.Info)
				entry.Addend = conv.I64(raw.Addend)
			} else {
				raw, err := utils.Read[elf64Rel](rec)
				if err != nil {
					continue
				}
				entry.Offset = conv.U64(raw.Offset)
				entry.Info = conv.U64(raw.Info)
			}
			entry.SymbolIndex = uint32(entry.Info >> 32)
			entry.Type = uint32(entry.Info & 0xffffffff)
		}

		if sym, ok := symbols.Symbol(uint64(entry.SymbolIndex)); ok {
			entry.Symbol = &sym
		}

		r.entries = append(r.entries, entry)
	}

	return r
}

// NumEntries returns the number of relocation entries in the section.
func (r *RelocationSection) NumEntries() uint64 {
	return uint64(len(r.entries))
}

// Entry returns the entry at index i. The second return value is false when
// i is out of range.
func (r *RelocationSection) Entry(i uint64) (RelocationEntry, bool) {
	if i >= uint64(len(r.entries)) {
		return RelocationEntry{}, false
	}
	return r.entries[i], true
}

// Entries returns all entries in table order. The returned slice must not
// be modified.
func (r *RelocationSection) Entries() []RelocationEntry {
	return r.entries
}

// SymbolSection returns the symbol table the entries were resolved against.
func (r *RelocationSection) SymbolSection() *SymbolSection {
	return r.symbols
}
