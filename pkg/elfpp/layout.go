package elfpp

// On-disk record layouts per the System V gABI. A seek-and-read of exactly
// the layout's size at the right offset fills one record bit-exactly; the
// fields stay in file byte order until a decoder passes them through the
// EndianConverter. The 32- and 64-bit program headers differ not only in
// field widths but in the position of the flags field.

type elf32Ehdr struct {
	Ident     [16]byte
	Type      uint16
	Machine   uint16
	Version   uint32
	Entry     uint32
	Phoff     uint32
	Shoff     uint32
	Flags     uint32
	Ehsize    uint16
	Phentsize uint16
	Phnum     uint16
	Shentsize uint16
	Shnum     uint16
	Shstrndx  uint16
}

type elf64Ehdr struct {
	Ident     [16]byte
	Type      uint16
	Machine   uint16
	Version   uint32
	Entry     uint64
	Phoff     uint64
	Shoff     uint64
	Flags     uint32
	Ehsize    uint16
	Phentsize uint16
	Phnum     uint16
	Shentsize uint16
	Shnum     uint16
	Shstrndx  uint16
}

type elf32Phdr struct {
	Type   uint32
	Offset uint32
	Vaddr  uint32
	Paddr  uint32
	Filesz uint32
	Memsz  uint32
	Flags  uint32
	Align  uint32
}

type elf64Phdr struct {
	Type   uint32
	Flags  uint32
	Offset uint64
	Vaddr  uint64
	Paddr  uint64
	Filesz uint64
	Memsz  uint64
	Align  uint64
}

type elf32Shdr struct {
	Name      uint32
	Type      uint32
	Flags     uint32
	Addr      uint32
	Offset    uint32
	Size      uint32
	Link      uint32
	Info      uint32
	Addralign uint32
	Entsize   uint32
}

type elf64Shdr struct {
	Name      uint32
	Type      uint32
	Flags     uint64
	Addr      uint64
	Offset    uint64
	Size      uint64
	Link      uint32
	Info      uint32
	Addralign uint64
	Entsize   uint64
}

type elf32Dyn struct {
	Tag int32
	Val uint32
}

type elf64Dyn struct {
	Tag int64
	Val uint64
}

type elf32Sym struct {
	Name  uint32
	Value uint32
	Size  uint32
	Info  uint8
	Other uint8
	Shndx uint16
}

type elf64Sym struct {
	Name  uint32
	Info  uint8
	Other uint8
	Shndx uint16
	Value uint64
	Size  uint64
}

type elf32Rel struct {
	Offset uint32
	Info   uint32
}

type elf32Rela struct {
	Offset uint32
	Info   uint32
	Addend int32
}

type elf64Rel struct {
	Offset uint64
	Info   uint64
}

type elf64Rela struct {
	Offset uint64
	Info   uint64
	Addend int64
}

const (
	elf32EhdrSize = 52
	elf64EhdrSize = 64
	elf32PhdrSize = 32
	elf64PhdrSize = 56
	elf32ShdrSize = 40
	elf64ShdrSize = 64
	elf32DynSize  = 8
	elf64DynSize  = 16
	elf32SymSize  = 16
	elf64SymSize  = 24
	elf32RelSize  = 8
	elf32RelaSize = 12
	elf64RelSize  = 16
	elf64RelaSize = 24
)
