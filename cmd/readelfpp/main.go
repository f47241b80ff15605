// Command readelfpp is a simple clone of readelf from the GNU binutils. It
// does not implement all features readelf provides, just the tables the
// library decodes.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/Darth-Revan/libelfpp/pkg/elfpp"
	"github.com/Darth-Revan/libelfpp/pkg/utils"
)

var (
	app      = kingpin.New("readelfpp", "Simple clone of readelf.").Version(elfpp.VersionString())
	fileName = app.Arg("file", "The name of the ELF file to read.").Required().String()

	showHeader   = app.Flag("file-header", "Display the information contained in the ELF header at the start of the file.").Short('f').Bool()
	showSegments = app.Flag("segments", "Display the information contained in the file's segment headers, if it has any.").Short('l').Bool()
	showSections = app.Flag("sections", "Display the information contained in the file's section headers, if it has any.").Short('S').Bool()
	showAll      = app.Flag("headers", "Display all the headers in the file. Equivalent to -f -l -S.").Short('e').Bool()
	showSymbols  = app.Flag("symbols", "Display the entries in symbol table sections of the file, if it has any.").Short('s').Bool()
	showDynamic  = app.Flag("dynamic", "Display the contents of the file's dynamic section, if it has one.").Short('d').Bool()
	showNotes    = app.Flag("notes", "Display the contents of any notes sections, if any.").Short('n').Bool()
	showRelocs   = app.Flag("relocs", "Display the contents of the file's relocation sections, if it has any.").Short('r').Bool()
	verbose      = app.Flag("verbose", "Log decoding progress to stderr.").Bool()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger := log.NewNopLogger()
	if *verbose {
		logger = level.NewFilter(log.NewLogfmtLogger(os.Stderr), level.AllowDebug())
	}

	file, err := elfpp.OpenWithLogger(*fileName, logger)
	if err != nil {
		utils.Fatal(err)
	}

	if *showAll {
		*showHeader = true
		*showSegments = true
		*showSections = true
	}

	if *showHeader {
		printHeader(file)
	}
	if *showSections {
		printSectionTable(file)
	}
	if *showSegments {
		printSegmentTable(file)
	}
	if *showDynamic {
		printDynamicSection(file)
	}
	if *showSymbols {
		printSymbolSections(file)
	}
	if *showRelocs {
		printRelocSections(file)
	}
	if *showNotes {
		printNoteSections(file)
	}
}

func printHeader(file *elfpp.File) {
	h := file.Header()
	class := "ELF32"
	if h.Is64Bit() {
		class = "ELF64"
	}
	version := fmt.Sprintf("%d", h.Version())
	if h.Version() == 1 {
		version += " (current)"
	}
	encoding := "2's complement, Big Endian"
	if h.IsLittleEndian() {
		encoding = "2's complement, Little Endian"
	}

	fmt.Println("ELF Header:")
	fmt.Printf("%-39s %s\n", "Class:", class)
	fmt.Printf("%-39s %s\n", "Version:", version)
	fmt.Printf("%-39s %s\n", "Encoding:", encoding)
	fmt.Printf("%-39s %s\n", "OS/ABI:", h.ABIString())
	fmt.Printf("%-39s %s\n", "Type:", h.TypeString())
	fmt.Printf("%-39s %s\n", "Machine:", h.MachineString())
	fmt.Printf("%-39s 0x%X\n", "Entrypoint:", h.EntryPoint())
	fmt.Printf("%-39s %d (Bytes in File)\n", "Start of Program Headers:", h.ProgramHeaderOffset())
	fmt.Printf("%-39s %d (Bytes in File)\n", "Start of Section Headers:", h.SectionHeaderOffset())
	fmt.Printf("%-39s 0x%X\n", "Flags:", h.Flags())
	fmt.Printf("%-39s %d (Bytes)\n", "Size of File Header:", h.HeaderSize())
	fmt.Printf("%-39s %d (Bytes)\n", "Size of Program Header:", h.ProgramHeaderSize())
	fmt.Printf("%-39s %d\n", "Number of Program Headers:", h.ProgramHeaderNumber())
	fmt.Printf("%-39s %d (Bytes)\n", "Size of Section Header:", h.SectionHeaderSize())
	fmt.Printf("%-39s %d\n", "Number of Section Headers:", h.SectionHeaderNumber())
	fmt.Printf("%-39s %d\n", "Section Header String Table Index:", h.SectionHeaderStringTableIndex())
}

func printSectionTable(file *elfpp.File) {
	fmt.Println("Section Headers:")
	fmt.Printf(" [%-2s] %-17s %-17s %-17s %-10s\n", "No", "Name", "Type", "Address", "Offset")
	fmt.Printf("      %-17s %-17s %-17s %-10s\n", "Size", "Entry Size", "Flags Link Info", "Align")

	for _, sec := range file.Sections() {
		fmt.Printf(" [%2d] %-17s %-17s %017X %08X\n", sec.Index(), sec.Name(), sec.TypeString(),
			sec.Address(), sec.Offset())
		fmt.Printf("      %017X %017X %5s %5d %5d %6d\n", sec.Size(), sec.EntrySize(),
			sec.FlagsString(), sec.Link(), sec.Info(), sec.AddressAlignment())
	}
	fmt.Println("Key to Flags:")
	fmt.Println(" W (write), A (alloc), X (execute), M (merge), S (strings), l (large)")
	fmt.Println(" I (info), L (link order), G (group), T (TLS), E (exclude), x (unkown)")
	fmt.Println(" O (extra OS processing required), o (OS specific), p (processor specific)")
}

func printSegmentTable(file *elfpp.File) {
	fmt.Println("Program Headers:")
	fmt.Printf(" %-20s %-20s %-20s %-20s\n", "Type", "Offset", "Virtual Address", "Physical Address")
	fmt.Printf(" %-20s %-20s %-20s %-20s\n", "", "File Size", "Memory Size", " Flags  Align")

	for _, seg := range file.Segments() {
		fmt.Printf(" %-20s 0x%018X 0x%018X 0x%018X\n", seg.TypeString(), seg.Offset(),
			seg.VirtualAddress(), seg.PhysicalAddress())
		fmt.Printf(" %-20s 0x%018X 0x%018X %6s %8X\n", "", seg.FileSize(), seg.MemorySize(),
			seg.FlagsString(), seg.AddressAlignment())
	}

	fmt.Println("Mapping of Sections on Segments:")
	sections := file.Sections()
	for _, seg := range file.Segments() {
		var names []string
		for _, index := range seg.AssociatedSections() {
			names = append(names, sections[index].Name())
		}
		fmt.Printf(" %02d  %s\n", seg.Index(), strings.Join(names, " "))
	}
}

func printDynamicSection(file *elfpp.File) {
	dyn := file.DynamicSection()
	if dyn == nil {
		fmt.Println("There is no dynamic section in this file.")
		return
	}

	fmt.Printf("Dynamic section contains %d entries:\n", dyn.NumEntries())
	fmt.Printf("  %-20s %-20s %-30s\n", "Tag", "Type", "Value")
	for _, entry := range dyn.Entries() {
		fmt.Printf(" 0x%018X %-20s %d\n", uint64(entry.Tag), entry.TagString(), entry.Value)
	}
}

func printSymbolSections(file *elfpp.File) {
	for _, symSec := range file.SymbolSections() {
		fmt.Printf("Symbol table '%s' contains %d entries:\n", symSec.Name(), symSec.NumSymbols())
		fmt.Printf("%6s:    %-15s %-5s %-8s %-8s %-5s %-25s\n", "Num", "Value", "Size", "Type",
			"Bind", "Ndx", "Name")

		for i, sym := range symSec.Symbols() {
			fmt.Printf("%6d: %016X %5d %-8s %-8s %5d %-25s\n", i, sym.Value, sym.Size,
				sym.TypeString(), sym.BindString(), sym.SectionIndex, truncate(sym.Name, 25))
		}
		fmt.Println()
	}
}

func printRelocSections(file *elfpp.File) {
	for _, relSec := range file.RelocationSections() {
		fmt.Printf("Relocation section '%s' at offset 0x%X contains %d entries:\n",
			relSec.Name(), relSec.Offset(), relSec.NumEntries())
		fmt.Printf("%-12s %-12s %-8s %-16s %-55s\n", "Offset", "Info", "Type", "Sym. Value",
			"Sym. Name + Addend")

		for _, entry := range relSec.Entries() {
			var symValue uint64
			symName := ""
			if entry.Symbol != nil {
				symValue = entry.Symbol.Value
				symName = truncate(entry.Symbol.Name, 45)
			}
			fmt.Printf("%012X %012X %08X %016X %s + %X\n", entry.Offset, entry.Info,
				entry.Type, symValue, symName, entry.Addend)
		}
		fmt.Println()
	}
}

func printNoteSections(file *elfpp.File) {
	for _, noteSec := range file.NoteSections() {
		fmt.Printf("Displaying notes found at file offset 0x%08X with length 0x%08X:\n",
			noteSec.Offset(), noteSec.Size())
		fmt.Printf("%-20s %-12s %-10s\n", "Owner", "Data size", "Type")

		for _, note := range noteSec.Notes() {
			fmt.Printf("%-20s 0x%08X 0x%08X\n", note.Name, len(note.Description), note.Type)
		}
		fmt.Println()
	}
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
