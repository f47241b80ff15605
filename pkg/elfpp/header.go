package elfpp

import (
	"debug/elf"

	"github.com/Darth-Revan/libelfpp/pkg/utils"
	"github.com/pkg/errors"
)

// FileHeader is the decoded ELF file header. All integers are in host byte
// order and widened to their 64-bit representation, so no accessor depends
// on the file's class.
type FileHeader struct {
	class      elf.Class
	data       elf.Data
	version    byte
	abi        elf.OSABI
	abiVersion byte
	typ        elf.Type
	machine    elf.Machine
	entry      uint64
	phoff      uint64
	shoff      uint64
	flags      uint32
	ehsize     uint16
	phentsize  uint16
	phnum      uint16
	shentsize  uint16
	shnum      uint16
	shstrndx   uint16
}

func decodeFileHeader(contents []byte, class elf.Class, conv *EndianConverter) (*FileHeader, error) {
	h := &FileHeader{
		class:      class,
		data:       elf.Data(contents[elf.EI_DATA]),
		version:    contents[elf.EI_VERSION],
		abi:        elf.OSABI(contents[elf.EI_OSABI]),
		abiVersion: contents[elf.EI_ABIVERSION],
	}

	switch class {
	case elf.ELFCLASS32:
		if len(contents) < elf32EhdrSize {
			return nil, errors.Wrap(ErrTruncated, "file smaller than ELF32 header")
		}
		raw, err := utils.Read[elf32Ehdr](contents)
		if err != nil {
			return nil, errors.Wrap(ErrTruncated, err.Error())
		}
		h.typ = elf.Type(conv.U16(raw.Type))
		h.machine = elf.Machine(conv.U16(raw.Machine))
		h.entry = uint64(conv.U32(raw.Entry))
		h.phoff = uint64(conv.U32(raw.Phoff))
		h.shoff = uint64(conv.U32(raw.Shoff))
		h.flags = conv.U32(raw.Flags)
		h.ehsize = conv.U16(raw.Ehsize)
		h.phentsize = conv.U16(raw.Phentsize)
		h.phnum = conv.U16(raw.Phnum)
		h.shentsize = conv.U16(raw.Shentsize)
		h.shnum = conv.U16(raw.Shnum)
		h.shstrndx = conv.U16(raw.Shstrndx)
	default:
		if len(contents) < elf64EhdrSize {
			return nil, errors.Wrap(ErrTruncated, "file smaller than ELF64 header")
		}
		raw, err := utils.Read[elf64Ehdr](contents)
		if err != nil {
			return nil, errors.Wrap(ErrTruncated, err.Error())
		}
		h.typ = elf.Type(conv.U16(raw.Type))
		h.machine = elf.Machine(conv.U16(raw.Machine))
		h.entry = conv.U64(raw.Entry)
		h.phoff = conv.U64(raw.Phoff)
		h.shoff = conv.U64(raw.Shoff)
		h.flags = conv.U32(raw.Flags)
		h.ehsize = conv.U16(raw.Ehsize)
		h.phentsize = conv.U16(raw.Phentsize)
		h.phnum = conv.U16(raw.Phnum)
		h.shentsize = conv.U16(raw.Shentsize)
		h.shnum = conv.U16(raw.Shnum)
		h.shstrndx = conv.U16(raw.Shstrndx)
	}

	return h, nil
}

// Is64Bit reports whether the file class is ELFCLASS64.
func (h *FileHeader) Is64Bit() bool { return h.class == elf.ELFCLASS64 }

// IsLittleEndian reports whether the file encoding is two's complement
// little endian.
func (h *FileHeader) IsLittleEndian() bool { return h.data == elf.ELFDATA2LSB }

// Class returns the file's class byte.
func (h *FileHeader) Class() elf.Class { return h.class }

// Version returns the file's version from the identification bytes.
func (h *FileHeader) Version() byte { return h.version }

// ABI returns the file's OS/ABI code.
func (h *FileHeader) ABI() elf.OSABI { return h.abi }

// ABIString returns the canonical name for the file's OS/ABI.
func (h *FileHeader) ABIString() string { return abiString(h.abi) }

// ABIVersion returns the ABI version byte.
func (h *FileHeader) ABIVersion() byte { return h.abiVersion }

// Type returns the ELF object type.
func (h *FileHeader) Type() elf.Type { return h.typ }

// TypeString returns the ELF object type as a printable token.
func (h *FileHeader) TypeString() string {
	switch h.typ {
	case elf.ET_NONE:
		return "None"
	case elf.ET_REL:
		return "Relocatable Object"
	case elf.ET_EXEC:
		return "Executable"
	case elf.ET_DYN:
		return "Shared Object"
	case elf.ET_CORE:
		return "Core File"
	default:
		return "Unknown"
	}
}

// Machine returns the machine architecture code.
func (h *FileHeader) Machine() elf.Machine { return h.machine }

// MachineString returns the canonical name of the machine architecture.
func (h *FileHeader) MachineString() string { return machineString(h.machine) }

// EntryPoint returns the virtual address of the program entry point.
func (h *FileHeader) EntryPoint() uint64 { return h.entry }

// SectionHeaderNumber returns the number of section headers. Zero means the
// file has no section table.
func (h *FileHeader) SectionHeaderNumber() uint16 { return h.shnum }

// SectionHeaderOffset returns the file offset of the section header table.
func (h *FileHeader) SectionHeaderOffset() uint64 { return h.shoff }

// SectionHeaderSize returns the size of one section header entry.
func (h *FileHeader) SectionHeaderSize() uint16 { return h.shentsize }

// ProgramHeaderNumber returns the number of program headers. Zero means the
// file has no program header table.
func (h *FileHeader) ProgramHeaderNumber() uint16 { return h.phnum }

// ProgramHeaderOffset returns the file offset of the program header table.
func (h *FileHeader) ProgramHeaderOffset() uint64 { return h.phoff }

// ProgramHeaderSize returns the size of one program header entry.
func (h *FileHeader) ProgramHeaderSize() uint16 { return h.phentsize }

// Flags returns the processor-specific flags word.
func (h *FileHeader) Flags() uint32 { return h.flags }

// HeaderSize returns the size of the file header in bytes.
func (h *FileHeader) HeaderSize() uint16 { return h.ehsize }

// SectionHeaderStringTableIndex returns the section index of the section
// header string table. elf.SHN_UNDEF means the file has none.
func (h *FileHeader) SectionHeaderStringTableIndex() uint16 { return h.shstrndx }
