package elfpp

import (
	"debug/elf"

	"github.com/Darth-Revan/libelfpp/pkg/utils"
)

// Symbol is one decoded symbol table entry. The name has already been
// resolved against the string section named by the symbol section's link.
type Symbol struct {
	Name         string
	Value        uint64
	Size         uint64
	Bind         elf.SymBind
	Type         elf.SymType
	SectionIndex elf.SectionIndex
	Other        byte
}

// BindString returns the symbol binding as a printable token.
func (s *Symbol) BindString() string {
	switch s.Bind {
	case elf.STB_LOCAL:
		return "LOCAL"
	case elf.STB_GLOBAL:
		return "GLOBAL"
	case elf.STB_WEAK:
		return "WEAK"
	default:
		return "UNKOWN"
	}
}

// TypeString returns the symbol type as a printable token.
func (s *Symbol) TypeString() string {
	switch s.Type {
	case elf.STT_NOTYPE:
		return "NOTYPE"
	case elf.STT_OBJECT:
		return "OBJECT"
	case elf.STT_FUNC:
		return "FUNC"
	case elf.STT_SECTION:
		return "SECTION"
	case elf.STT_FILE:
		return "FILE"
	case elf.STT_COMMON:
		return "COMMON"
	case elf.STT_TLS:
		return "TLS"
	default:
		return "UNKOWN"
	}
}

// SymbolSection interprets a section payload as a symbol table. Entry 0 is
// the conventional null symbol and decodes as all zeros with an empty name.
type SymbolSection struct {
	*Section
	strings *StringSection
	symbols []Symbol
}

func newSymbolSection(s *Section, strings *StringSection, class elf.Class, conv *EndianConverter) *SymbolSection {
	t := &SymbolSection{Section: s, strings: strings}

	if s.entSize == 0 {
		return t
	}
	count := uint64(len(s.data)) / s.entSize
	t.symbols = make([]Symbol, 0, count)

	for i := uint64(0); i < count; i++ {
		rec := s.data[i*s.entSize:]
		var sym Symbol

		switch class {
		case elf.ELFCLASS32:
			raw, err := utils.Read[elf32Sym](rec)
			if err != nil {
				continue
			}
			sym = Symbol{
				Name:         strings.GetString(uint64(conv.U32(raw.Name))),
				Value:        uint64(conv.U32(raw.Value)),
				Size:         uint64(conv.U32(raw.Size)),
				Bind:         elf.ST_BIND(raw.Info),
				Type:         elf.ST_TYPE(raw.Info),
				SectionIndex: elf.SectionIndex(conv.U16(raw.Shndx)),
				Other:        raw.Other,
			}
		default:
			raw, err := utils.Read[elf64Sym](rec)
			if err != nil {
				continue
			}
			sym = Symbol{
				Name:         strings.GetString(uint64(conv.U32(raw.Name))),
				Value:        conv.U64(raw.Value),
				Size:         conv.U64(raw.Size),
				Bind:         elf.ST_BIND(raw.Info),
				Type:         elf.ST_TYPE(raw.Info),
				SectionIndex: elf.SectionIndex(conv.U16(raw.Shndx)),
				Other:        raw.Other,
			}
		}

		t.symbols = append(t.symbols, sym)
	}

	return t
}

// NumSymbols returns the number of symbols in the section.
func (t *SymbolSection) NumSymbols() uint64 {
	return uint64(len(t.symbols))
}

// Symbol returns the symbol at index i. The second return value is false
// when i is out of range.
func (t *SymbolSection) Symbol(i uint64) (Symbol, bool) {
	if i >= uint64(len(t.symbols)) {
		return Symbol{}, false
	}
	return t.symbols[i], true
}

// Symbols returns all symbols in table order. The returned slice must not
// be modified.
func (t *SymbolSection) Symbols() []Symbol {
	return t.symbols
}

// StringSection returns the string section the symbol names were resolved
// against.
func (t *SymbolSection) StringSection() *StringSection {
	return t.strings
}
