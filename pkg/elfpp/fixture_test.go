package elfpp

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test images are assembled byte by byte so every header field and offset
// is known exactly. The layouts below mirror small dynamically linked
// executables: a 64-bit little-endian one with a RELA table, a 32-bit
// little-endian one with a REL table, and a header-only 32-bit big-endian
// one for the swap path.

type imageBuilder struct {
	t     *testing.T
	order binary.ByteOrder
	buf   []byte
}

func newImage(t *testing.T, order binary.ByteOrder) *imageBuilder {
	return &imageBuilder{t: t, order: order}
}

func (b *imageBuilder) len() uint64 { return uint64(len(b.buf)) }

func (b *imageBuilder) u8(v byte) { b.buf = append(b.buf, v) }

func (b *imageBuilder) u16(v uint16) {
	var tmp [2]byte
	b.order.PutUint16(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}

func (b *imageBuilder) u32(v uint32) {
	var tmp [4]byte
	b.order.PutUint32(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}

func (b *imageBuilder) u64(v uint64) {
	var tmp [8]byte
	b.order.PutUint64(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}

func (b *imageBuilder) str(s string) { b.buf = append(b.buf, s...) }

// at asserts the cursor is exactly at off, catching any drift between the
// planned layout and the bytes written so far.
func (b *imageBuilder) at(off uint64) {
	b.t.Helper()
	require.Equal(b.t, off, b.len(), "image layout drifted")
}

func (b *imageBuilder) padTo(off uint64) {
	require.LessOrEqual(b.t, b.len(), off, "image layout overshot")
	for b.len() < off {
		b.u8(0)
	}
}

func (b *imageBuilder) write(name string) string {
	b.t.Helper()
	path := filepath.Join(b.t.TempDir(), name)
	require.NoError(b.t, os.WriteFile(path, b.buf, 0o644))
	return path
}

// 64-bit little-endian executable layout.
const (
	f64InterpOff = 344 // 64-byte ehdr + 5*56-byte phdrs
	f64NoteOff   = 372
	f64DynsymOff = 408
	f64DynstrOff = 480
	f64RelaOff   = 536
	f64DynOff    = 584
	f64ShstrOff  = 680
	f64Shoff     = 760

	f64VBase     = 0x400000
	f64Entry     = 0x400430
	f64DynAddr   = 0x600000
	f64BssAddr   = 0x600060
	f64DynstrLen = 49
)

func (b *imageBuilder) shdr64(name uint32, typ uint32, flags, addr, off, size uint64, link, info uint32, align, entsize uint64) {
	b.u32(name)
	b.u32(typ)
	b.u64(flags)
	b.u64(addr)
	b.u64(off)
	b.u64(size)
	b.u32(link)
	b.u32(info)
	b.u64(align)
	b.u64(entsize)
}

func (b *imageBuilder) phdr64(typ, flags uint32, off, vaddr, filesz, memsz, align uint64) {
	b.u32(typ)
	b.u32(flags)
	b.u64(off)
	b.u64(vaddr)
	b.u64(vaddr) // paddr mirrors vaddr
	b.u64(filesz)
	b.u64(memsz)
	b.u64(align)
}

func (b *imageBuilder) sym64(name uint32, info, other byte, shndx uint16, value, size uint64) {
	b.u32(name)
	b.u8(info)
	b.u8(other)
	b.u16(shndx)
	b.u64(value)
	b.u64(size)
}

func buildELF64LE(t *testing.T) string {
	b := newImage(t, binary.LittleEndian)

	// File header.
	b.str("\x7fELF")
	b.u8(2) // ELFCLASS64
	b.u8(1) // ELFDATA2LSB
	b.u8(1) // EV_CURRENT
	b.u8(0) // ELFOSABI_NONE
	b.u8(0)
	b.str("\x00\x00\x00\x00\x00\x00\x00")
	b.u16(2)  // ET_EXEC
	b.u16(62) // EM_X86_64
	b.u32(1)
	b.u64(f64Entry)
	b.u64(64) // phoff
	b.u64(f64Shoff)
	b.u32(0)
	b.u16(64) // ehsize
	b.u16(56) // phentsize
	b.u16(5)  // phnum
	b.u16(64) // shentsize
	b.u16(9)  // shnum
	b.u16(8)  // shstrndx
	b.at(64)

	// Program headers: PHDR, INTERP, LOAD(RX), LOAD(RW), DYNAMIC.
	b.phdr64(6, 4, 64, f64VBase+64, 280, 280, 8)
	b.phdr64(3, 4, f64InterpOff, f64VBase+f64InterpOff, 28, 28, 1)
	b.phdr64(1, 5, 0, f64VBase, 0x1000, 0x1000, 0x200000)
	b.phdr64(1, 6, f64DynOff, f64DynAddr, 96, 240, 0x1000)
	b.phdr64(2, 6, f64DynOff, f64DynAddr, 96, 96, 8)
	b.at(f64InterpOff)

	b.str("/lib64/ld-linux-x86-64.so.2\x00")
	b.at(f64NoteOff)

	// One note: 4-byte name "GNU", 16-byte description, type NT_GNU_BUILD_ID.
	b.u32(4)
	b.u32(16)
	b.u32(3)
	b.str("GNU\x00")
	for i := 0; i < 16; i++ {
		b.u8(0xAA)
	}
	b.padTo(f64DynsymOff)

	b.sym64(0, 0, 0, 0, 0, 0)
	b.sym64(1, 0x12, 0, 0, 0, 0)                // GLOBAL FUNC __libc_start_main, undefined
	b.sym64(19, 0x11, 0, 7, f64BssAddr, 140)    // GLOBAL OBJECT _ZSt4cout in .bss
	b.at(f64DynstrOff)

	b.str("\x00__libc_start_main\x00_ZSt4cout\x00libc.so.6\x00libm.so.6\x00")
	b.padTo(f64RelaOff)

	// RELA entries: GLOB_DAT against symbol 1, 64 against symbol 2.
	b.u64(f64DynAddr + 0x50)
	b.u64(1<<32 | 6)
	b.u64(0)
	b.u64(f64BssAddr)
	b.u64(2<<32 | 1)
	b.u64(8)
	b.at(f64DynOff)

	for _, e := range [][2]uint64{{1, 29}, {1, 39}, {12, 0x400400}, {10, f64DynstrLen}, {6, f64VBase + f64DynsymOff}, {0, 0}} {
		b.u64(e[0])
		b.u64(e[1])
	}
	b.at(f64ShstrOff)

	b.str("\x00.interp\x00.note.gnu.build-id\x00.dynsym\x00.dynstr\x00.rela.dyn\x00.dynamic\x00.bss\x00.shstrtab\x00")
	b.padTo(f64Shoff)

	b.shdr64(0, 0, 0, 0, 0, 0, 0, 0, 0, 0)
	b.shdr64(1, 1, 2, f64VBase+f64InterpOff, f64InterpOff, 28, 0, 0, 1, 0)
	b.shdr64(9, 7, 2, f64VBase+f64NoteOff, f64NoteOff, 32, 0, 0, 4, 0)
	b.shdr64(28, 11, 2, f64VBase+f64DynsymOff, f64DynsymOff, 72, 4, 1, 8, 24)
	b.shdr64(36, 3, 2, f64VBase+f64DynstrOff, f64DynstrOff, f64DynstrLen, 0, 0, 1, 0)
	b.shdr64(44, 4, 2, f64VBase+f64RelaOff, f64RelaOff, 48, 3, 0, 8, 24)
	b.shdr64(54, 6, 3, f64DynAddr, f64DynOff, 96, 4, 0, 8, 16)
	b.shdr64(63, 8, 3, f64BssAddr, f64ShstrOff, 144, 0, 0, 16, 0)
	b.shdr64(68, 3, 0, 0, f64ShstrOff, 78, 0, 0, 1, 0)

	return b.write("elf64le")
}

// 32-bit little-endian executable layout.
const (
	f32DynsymOff = 116 // 52-byte ehdr + 2*32-byte phdrs
	f32DynstrOff = 148
	f32RelOff    = 184
	f32DynOff    = 200
	f32ShstrOff  = 240
	f32Shoff     = 292

	f32VBase     = 0x8048000
	f32Entry     = 0x8048310
	f32DynAddr   = 0x8049000
	f32BssAddr   = 0x8049028
	f32DynstrLen = 35
)

func (b *imageBuilder) shdr32(name uint32, typ uint32, flags, addr, off, size uint32, link, info uint32, align, entsize uint32) {
	b.u32(name)
	b.u32(typ)
	b.u32(flags)
	b.u32(addr)
	b.u32(off)
	b.u32(size)
	b.u32(link)
	b.u32(info)
	b.u32(align)
	b.u32(entsize)
}

func (b *imageBuilder) phdr32(typ uint32, off, vaddr, filesz, memsz uint32, flags, align uint32) {
	b.u32(typ)
	b.u32(off)
	b.u32(vaddr)
	b.u32(vaddr)
	b.u32(filesz)
	b.u32(memsz)
	b.u32(flags)
	b.u32(align)
}

func buildELF32LE(t *testing.T) string {
	b := newImage(t, binary.LittleEndian)

	b.str("\x7fELF")
	b.u8(1) // ELFCLASS32
	b.u8(1) // ELFDATA2LSB
	b.u8(1)
	b.u8(0)
	b.u8(0)
	b.str("\x00\x00\x00\x00\x00\x00\x00")
	b.u16(2) // ET_EXEC
	b.u16(3) // EM_386
	b.u32(1)
	b.u32(f32Entry)
	b.u32(52) // phoff
	b.u32(f32Shoff)
	b.u32(0)
	b.u16(52) // ehsize
	b.u16(32) // phentsize
	b.u16(2)  // phnum
	b.u16(40) // shentsize
	b.u16(7)  // shnum
	b.u16(6)  // shstrndx
	b.at(52)

	// Program headers: LOAD(RX), DYNAMIC.
	b.phdr32(1, 0, f32VBase, 0x1000, 0x1000, 5, 0x1000)
	b.phdr32(2, f32DynOff, f32DynAddr, 40, 40, 6, 4)
	b.at(f32DynsymOff)

	// Symbols: null entry, then one global function.
	for i := 0; i < 4; i++ {
		b.u32(0)
	}
	b.u32(1)
	b.u32(0x8048400)
	b.u32(0)
	b.u8(0x12) // GLOBAL FUNC _ZNSt8ios_base4InitD1Ev
	b.u8(0)
	b.u16(0)
	b.at(f32DynstrOff)

	b.str("\x00_ZNSt8ios_base4InitD1Ev\x00libc.so.6\x00")
	b.padTo(f32RelOff)

	// REL entries: two R_386_JMP_SLOT against symbol 1.
	b.u32(0x804a000)
	b.u32(1<<8 | 7)
	b.u32(0x804a004)
	b.u32(1<<8 | 7)
	b.at(f32DynOff)

	for _, e := range [][2]uint32{{1, 25}, {12, 0x8048300}, {10, f32DynstrLen}, {22, 0xdead}, {0, 0}} {
		b.u32(e[0])
		b.u32(e[1])
	}
	b.at(f32ShstrOff)

	b.str("\x00.dynsym\x00.dynstr\x00.rel.plt\x00.dynamic\x00.bss\x00.shstrtab\x00")
	b.padTo(f32Shoff)

	b.shdr32(0, 0, 0, 0, 0, 0, 0, 0, 0, 0)
	b.shdr32(1, 11, 2, f32VBase+f32DynsymOff, f32DynsymOff, 32, 2, 1, 4, 16)
	b.shdr32(9, 3, 2, f32VBase+f32DynstrOff, f32DynstrOff, f32DynstrLen, 0, 0, 1, 0)
	b.shdr32(17, 9, 2, f32VBase+f32RelOff, f32RelOff, 16, 1, 0, 4, 8)
	b.shdr32(26, 6, 3, f32DynAddr, f32DynOff, 40, 2, 0, 4, 8)
	b.shdr32(35, 8, 3, f32BssAddr, f32ShstrOff, 64, 0, 0, 4, 0)
	b.shdr32(40, 3, 0, 0, f32ShstrOff, 50, 0, 0, 1, 0)

	return b.write("elf32le")
}

// buildELF32BE writes a header-only big-endian image. Decoding it on a
// little-endian host exercises the swap path end to end.
func buildELF32BE(t *testing.T) string {
	b := newImage(t, binary.BigEndian)

	b.str("\x7fELF")
	b.u8(1) // ELFCLASS32
	b.u8(2) // ELFDATA2MSB
	b.u8(1)
	b.u8(0)
	b.u8(0)
	b.str("\x00\x00\x00\x00\x00\x00\x00")
	b.u16(2)  // ET_EXEC
	b.u16(20) // EM_PPC
	b.u32(1)
	b.u32(0x10000120)
	b.u32(0)
	b.u32(0)
	b.u32(0x80000002)
	b.u16(52)
	b.u16(32)
	b.u16(0)
	b.u16(40)
	b.u16(0)
	b.u16(0)
	b.at(52)

	return b.write("elf32be")
}
