package elfpp

import (
	"debug/elf"
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// File is the decoded model of one ELF file: header, segments, sections and
// the derived views over them. It is built once by Open and immutable
// afterwards, so any number of readers may use it concurrently.
type File struct {
	path         string
	class        elf.Class
	littleEndian bool
	conv         *EndianConverter

	header   *FileHeader
	segments []*Segment
	sections []*Section

	strSection *StringSection
	dynamicSec *DynamicSection
	symbolSecs []*SymbolSection
	relocSecs  []*RelocationSection
	noteSecs   []*NoteSection
}

// Open decodes the ELF file at path.
func Open(path string) (*File, error) {
	return OpenWithLogger(path, log.NewNopLogger())
}

// OpenWithLogger decodes the ELF file at path, reporting load progress and
// per-entry recoveries through logger.
func OpenWithLogger(path string, logger log.Logger) (*File, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(ErrNotAccessible, "%s", path)
	}

	if len(contents) < elf.EI_NIDENT || string(contents[:len(elf.ELFMAG)]) != elf.ELFMAG {
		return nil, errors.Wrapf(ErrNotELF, "%s", path)
	}

	f := &File{path: path}

	switch elf.Class(contents[elf.EI_CLASS]) {
	case elf.ELFCLASS32:
		f.class = elf.ELFCLASS32
	case elf.ELFCLASS64:
		f.class = elf.ELFCLASS64
	default:
		return nil, errors.Wrapf(ErrInvalidClass, "class byte %#x", contents[elf.EI_CLASS])
	}

	switch elf.Data(contents[elf.EI_DATA]) {
	case elf.ELFDATA2LSB:
		f.littleEndian = true
	case elf.ELFDATA2MSB:
		f.littleEndian = false
	default:
		return nil, errors.Wrapf(ErrInvalidEncoding, "encoding byte %#x", contents[elf.EI_DATA])
	}

	f.conv = NewEndianConverter(f.littleEndian)

	f.header, err = decodeFileHeader(contents, f.class, f.conv)
	if err != nil {
		return nil, err
	}

	if err := f.loadSections(contents, logger); err != nil {
		return nil, err
	}
	if err := f.loadSegments(contents, logger); err != nil {
		return nil, err
	}

	return f, nil
}

// loadSections decodes the section header table, resolves section names
// against the section header string table and builds the derived views in
// dependency order: strings before symbols, symbols before relocations.
func (f *File) loadSections(contents []byte, logger log.Logger) error {
	entrySize := uint64(f.header.SectionHeaderSize())
	offset := f.header.SectionHeaderOffset()
	count := int(f.header.SectionHeaderNumber())

	for i := 0; i < count; i++ {
		sec, err := decodeSection(contents, offset+uint64(i)*entrySize, f.class, f.conv)
		if err != nil {
			return err
		}
		sec.index = i
		if sec.data == nil && sec.typ != elf.SHT_NULL && sec.typ != elf.SHT_NOBITS && sec.size != 0 {
			level.Warn(logger).Log("msg", "section payload outside file image", "section", i)
		}
		f.sections = append(f.sections, sec)
	}

	// Section names become resolvable once the section header string table
	// is in; everything else keys off section types and links.
	strIndex := f.header.SectionHeaderStringTableIndex()
	if strIndex != uint16(elf.SHN_UNDEF) && int(strIndex) < len(f.sections) {
		f.strSection = newStringSection(f.sections[strIndex])
		for _, sec := range f.sections {
			sec.name = f.strSection.GetString(uint64(sec.nameOffset))
		}
	}

	for _, sec := range f.sections {
		switch sec.typ {
		case elf.SHT_DYNAMIC:
			if f.dynamicSec == nil {
				f.dynamicSec = newDynamicSection(sec, f.class, f.conv)
			}
		case elf.SHT_SYMTAB, elf.SHT_DYNSYM:
			strSec := f.stringSectionAt(sec.link)
			if strSec == nil {
				level.Warn(logger).Log("msg", "symbol section has invalid string table link",
					"section", sec.index, "link", sec.link)
				continue
			}
			f.symbolSecs = append(f.symbolSecs, newSymbolSection(sec, strSec, f.class, f.conv))
		case elf.SHT_NOTE:
			f.noteSecs = append(f.noteSecs, newNoteSection(sec, f.conv))
		}
	}

	for _, sec := range f.sections {
		if sec.typ != elf.SHT_REL && sec.typ != elf.SHT_RELA {
			continue
		}
		symSec := f.symbolSectionAt(sec.link)
		if symSec == nil {
			level.Warn(logger).Log("msg", "relocation section has invalid symbol table link",
				"section", sec.index, "link", sec.link)
			continue
		}
		f.relocSecs = append(f.relocSecs, newRelocationSection(sec, symSec, f.class, f.conv))
	}

	level.Debug(logger).Log("msg", "loaded sections", "count", len(f.sections),
		"symtabs", len(f.symbolSecs), "reltabs", len(f.relocSecs), "notes", len(f.noteSecs))
	return nil
}

// loadSegments decodes the program header table and assigns to every
// segment the sections lying inside it.
func (f *File) loadSegments(contents []byte, logger log.Logger) error {
	entrySize := uint64(f.header.ProgramHeaderSize())
	offset := f.header.ProgramHeaderOffset()
	count := int(f.header.ProgramHeaderNumber())

	for i := 0; i < count; i++ {
		seg, err := decodeSegment(contents, offset+uint64(i)*entrySize, f.class, f.conv)
		if err != nil {
			return err
		}
		seg.index = i
		if seg.data == nil && seg.typ != elf.PT_NULL && seg.fileSize != 0 {
			level.Warn(logger).Log("msg", "segment payload outside file image", "segment", i)
		}

		for _, sec := range f.sections {
			if seg.contains(sec) {
				seg.addSectionIndex(sec.index)
			}
		}

		f.segments = append(f.segments, seg)
	}

	level.Debug(logger).Log("msg", "loaded segments", "count", len(f.segments))
	return nil
}

// stringSectionAt wraps the section at index in a string view. Returns nil
// when the index is out of range or the section is no string table.
func (f *File) stringSectionAt(index uint32) *StringSection {
	if int(index) >= len(f.sections) {
		return nil
	}
	sec := f.sections[index]
	if sec.typ != elf.SHT_STRTAB {
		return nil
	}
	return newStringSection(sec)
}

// symbolSectionAt returns the already-built symbol view over the section at
// index, if any.
func (f *File) symbolSectionAt(index uint32) *SymbolSection {
	for _, sym := range f.symbolSecs {
		if sym.index == int(index) {
			return sym
		}
	}
	return nil
}

// Path returns the path the file was opened from.
func (f *File) Path() string { return f.path }

// Class returns the detected file class.
func (f *File) Class() elf.Class { return f.class }

// IsLittleEndian reports whether the file encoding is little endian.
func (f *File) IsLittleEndian() bool { return f.littleEndian }

// Header returns the decoded file header.
func (f *File) Header() *FileHeader { return f.header }

// Segments returns all segments in program header table order.
func (f *File) Segments() []*Segment { return f.segments }

// Sections returns all sections in section header table order.
func (f *File) Sections() []*Section { return f.sections }

// SectionByName returns the first section with the given name, or nil.
func (f *File) SectionByName(name string) *Section {
	for _, sec := range f.sections {
		if sec.name == name {
			return sec
		}
	}
	return nil
}

// StringSection returns the section header string table view, or nil when
// the file has none.
func (f *File) StringSection() *StringSection { return f.strSection }

// DynamicSection returns the dynamic table view, or nil when the file has
// no dynamic section.
func (f *File) DynamicSection() *DynamicSection { return f.dynamicSec }

// SymbolSections returns the symbol table views in section order.
func (f *File) SymbolSections() []*SymbolSection { return f.symbolSecs }

// RelocationSections returns the relocation table views in section order.
func (f *File) RelocationSections() []*RelocationSection { return f.relocSecs }

// NoteSections returns the note section views in section order.
func (f *File) NoteSections() []*NoteSection { return f.noteSecs }

// NeededLibraries returns the string values of all DT_NEEDED entries of the
// dynamic section, in table order, resolved against the string section the
// dynamic section links to. It returns nil when the file has no dynamic
// section or the link is unusable.
func (f *File) NeededLibraries() []string {
	if f.dynamicSec == nil {
		return nil
	}
	strSec := f.stringSectionAt(f.dynamicSec.link)
	if strSec == nil {
		return nil
	}

	var needed []string
	for _, entry := range f.dynamicSec.Entries() {
		if entry.Tag == elf.DT_NEEDED {
			needed = append(needed, strSec.GetString(entry.Value))
		}
	}
	return needed
}

// Equal reports whether other refers to the same file path.
func (f *File) Equal(other *File) bool {
	return other != nil && f.path == other.path
}

func (f *File) String() string {
	return fmt.Sprintf("ELFFile (%s)", f.path)
}
