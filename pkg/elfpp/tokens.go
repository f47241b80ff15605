package elfpp

import "debug/elf"

// Printable names for the enumerated header fields. The numeric constants
// themselves come from debug/elf; only the canonical spellings live here.
// Lookups that miss fall back to "Unknown" (header fields) or "UNKOWN"
// (section and segment types), matching the historical spellings of the
// library's output.

var machineStrings = map[elf.Machine]string{
	elf.EM_NONE:        "No machine",
	elf.EM_M32:         "AT&T WE 32100",
	elf.EM_SPARC:       "SUN SPARC",
	elf.EM_386:         "Intel 80386",
	elf.EM_68K:         "Motorola m68k family",
	elf.EM_88K:         "Motorola m88k family",
	elf.EM_860:         "Intel 80860",
	elf.EM_MIPS:        "MIPS R3000 big-endian",
	elf.EM_S370:        "IBM System/370",
	elf.EM_MIPS_RS3_LE: "MIPS R3000 little-endian",
	elf.EM_PARISC:      "HPPA",
	elf.EM_SPARC32PLUS: "Sun's v8plus",
	elf.EM_960:         "Intel 80960",
	elf.EM_PPC:         "PowerPC",
	elf.EM_PPC64:       "PowerPC 64-bit",
	elf.EM_S390:        "IBM S390",
	elf.EM_ARM:         "ARM",
	elf.EM_SH:          "Hitachi SH",
	elf.EM_SPARCV9:     "SPARC v9 64-bit",
	elf.EM_IA_64:       "Intel Merced",
	elf.EM_X86_64:      "Advanced Micro Devices X86-64 processor",
	elf.EM_VAX:         "Digital VAX",
	elf.EM_AARCH64:     "ARM AARCH64",
	elf.EM_RISCV:       "RISC-V",
	elf.EM_BPF:         "Linux BPF - in-kernel virtual machine",
}

var abiStrings = map[elf.OSABI]string{
	elf.ELFOSABI_NONE:       "UNIX - System V",
	elf.ELFOSABI_HPUX:       "HP-UX",
	elf.ELFOSABI_NETBSD:     "NetBSD",
	elf.ELFOSABI_LINUX:      "Linux",
	elf.ELFOSABI_SOLARIS:    "Sun Solaris",
	elf.ELFOSABI_AIX:        "IBM AIX",
	elf.ELFOSABI_IRIX:       "SGI Irix",
	elf.ELFOSABI_FREEBSD:    "FreeBSD",
	elf.ELFOSABI_TRU64:      "Compaq TRU64 UNIX",
	elf.ELFOSABI_MODESTO:    "Novell Modesto",
	elf.ELFOSABI_OPENBSD:    "OpenBSD",
	elf.ELFOSABI_ARM:        "ARM",
	elf.ELFOSABI_STANDALONE: "Standalone (embedded) application",
}

var sectionTypeStrings = map[elf.SectionType]string{
	elf.SHT_NULL:           "NULL",
	elf.SHT_PROGBITS:       "PROGBITS",
	elf.SHT_SYMTAB:         "SYMTAB",
	elf.SHT_STRTAB:         "STRTAB",
	elf.SHT_RELA:           "RELA",
	elf.SHT_HASH:           "HASH",
	elf.SHT_DYNAMIC:        "DYNAMIC",
	elf.SHT_NOTE:           "NOTE",
	elf.SHT_NOBITS:         "NOBITS",
	elf.SHT_REL:            "REL",
	elf.SHT_SHLIB:          "SHLIB",
	elf.SHT_DYNSYM:         "DYNSYM",
	elf.SHT_INIT_ARRAY:     "INIT_ARRAY",
	elf.SHT_FINI_ARRAY:     "FINI_ARRAY",
	elf.SHT_PREINIT_ARRAY:  "PREINIT_ARRAY",
	elf.SHT_GROUP:          "GROUP",
	elf.SHT_SYMTAB_SHNDX:   "SYMTAB_SHNDX",
	elf.SHT_GNU_HASH:       "GNU_HASH",
	elf.SHT_GNU_LIBLIST:    "GNU_LIBLIST",
	elf.SHT_GNU_ATTRIBUTES: "GNU_ATTRIBUTES",
	elf.SHT_GNU_VERDEF:     "VERDEF",
	elf.SHT_GNU_VERNEED:    "VERNEED",
	elf.SHT_GNU_VERSYM:     "VERSYM",
}

var segmentTypeStrings = map[elf.ProgType]string{
	elf.PT_NULL:         "NULL",
	elf.PT_LOAD:         "LOAD",
	elf.PT_DYNAMIC:      "DYNAMIC",
	elf.PT_INTERP:       "INTERP",
	elf.PT_NOTE:         "NOTE",
	elf.PT_SHLIB:        "SHLIB",
	elf.PT_PHDR:         "PHDR",
	elf.PT_TLS:          "TLS",
	elf.PT_GNU_EH_FRAME: "GNU_EH_FRAME",
	elf.PT_GNU_STACK:    "GNU_STACK",
	elf.PT_GNU_RELRO:    "GNU_RELRO",
	elf.PT_GNU_PROPERTY: "GNU_PROPERTY",
}

var dynamicTagStrings = map[elf.DynTag]string{
	elf.DT_NULL:            "NULL",
	elf.DT_NEEDED:          "NEEDED",
	elf.DT_PLTRELSZ:        "PLTRELSZ",
	elf.DT_PLTGOT:          "PLTGOT",
	elf.DT_HASH:            "HASH",
	elf.DT_STRTAB:          "STRTAB",
	elf.DT_SYMTAB:          "SYMTAB",
	elf.DT_RELA:            "RELA",
	elf.DT_RELASZ:          "RELASZ",
	elf.DT_RELAENT:         "RELAENT",
	elf.DT_STRSZ:           "STRSZ",
	elf.DT_SYMENT:          "SYMENT",
	elf.DT_INIT:            "INIT",
	elf.DT_FINI:            "FINI",
	elf.DT_SONAME:          "SONAME",
	elf.DT_RPATH:           "RPATH",
	elf.DT_SYMBOLIC:        "SYMBOLIC",
	elf.DT_REL:             "REL",
	elf.DT_RELSZ:           "RELSZ",
	elf.DT_RELENT:          "RELENT",
	elf.DT_PLTREL:          "PLTREL",
	elf.DT_DEBUG:           "DEBUG",
	elf.DT_TEXTREL:         "TEXTREL",
	elf.DT_JMPREL:          "JMPREL",
	elf.DT_BIND_NOW:        "BIND_NOW",
	elf.DT_INIT_ARRAY:      "INIT_ARRAY",
	elf.DT_INIT_ARRAYSZ:    "INIT_ARRAYSZ",
	elf.DT_FINI_ARRAY:      "FINI_ARRAY",
	elf.DT_FINI_ARRAYSZ:    "FINI_ARRAYSZ",
	elf.DT_RUNPATH:         "RUNPATH",
	elf.DT_FLAGS:           "FLAGS",
	elf.DT_PREINIT_ARRAY:   "PREINIT_ARRAY",
	elf.DT_PREINIT_ARRAYSZ: "PREINIT_ARRAYSZ",
	elf.DT_GNU_HASH:        "GNU_HASH",
	elf.DT_VERNEED:         "VERNEED",
	elf.DT_VERNEEDNUM:      "VERNEEDNUM",
	elf.DT_VERSYM:          "VERSYM",
	elf.DT_RELACOUNT:       "RELACOUNT",
}

// Section flags without a counterpart in debug/elf.
const (
	shfLarge   = 0x10000000
	shfExclude = 0x80000000
)

// Single-character section flag tokens in their canonical order
// W A X M S I L G T E l O o p. Concatenated in this order by
// Section.FlagsString.
var sectionFlagChars = []struct {
	mask uint64
	ch   byte
}{
	{uint64(elf.SHF_WRITE), 'W'},
	{uint64(elf.SHF_ALLOC), 'A'},
	{uint64(elf.SHF_EXECINSTR), 'X'},
	{uint64(elf.SHF_MERGE), 'M'},
	{uint64(elf.SHF_STRINGS), 'S'},
	{uint64(elf.SHF_INFO_LINK), 'I'},
	{uint64(elf.SHF_LINK_ORDER), 'L'},
	{uint64(elf.SHF_GROUP), 'G'},
	{uint64(elf.SHF_TLS), 'T'},
	{shfExclude, 'E'},
	{shfLarge, 'l'},
	{uint64(elf.SHF_OS_NONCONFORMING), 'O'},
	{uint64(elf.SHF_MASKOS), 'o'},
	{uint64(elf.SHF_MASKPROC), 'p'},
}

func machineString(m elf.Machine) string {
	if s, ok := machineStrings[m]; ok {
		return s
	}
	return "Unknown"
}

func abiString(a elf.OSABI) string {
	if s, ok := abiStrings[a]; ok {
		return s
	}
	return "Unknown"
}

func sectionTypeString(t elf.SectionType) string {
	if s, ok := sectionTypeStrings[t]; ok {
		return s
	}
	return "UNKOWN"
}

func segmentTypeString(t elf.ProgType) string {
	if s, ok := segmentTypeStrings[t]; ok {
		return s
	}
	return "UNKOWN"
}
