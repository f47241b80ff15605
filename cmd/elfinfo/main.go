// Command elfinfo prints basic information about an ELF file. It is the
// minimal example consumer of the library.
package main

import (
	"fmt"
	"os"

	"github.com/Darth-Revan/libelfpp/pkg/elfpp"
	"github.com/Darth-Revan/libelfpp/pkg/utils"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s ELFFILE\n", os.Args[0])
		os.Exit(1)
	}

	file, err := elfpp.Open(os.Args[1])
	if err != nil {
		utils.Fatal(err)
	}

	h := file.Header()
	bits := "32"
	if h.Is64Bit() {
		bits = "64"
	}
	encoding := "Big"
	if h.IsLittleEndian() {
		encoding = "Little"
	}

	fmt.Println("Basic ELF file information:")
	fmt.Println()
	fmt.Printf("Filename: %s\n", file.Path())
	fmt.Printf("ELF Type: %s\n", h.TypeString())
	fmt.Printf("Class: %s Bit\n", bits)
	fmt.Printf("Encoding: %s Endian\n", encoding)
	fmt.Printf("Entrypoint: %d (0x%x)\n", h.EntryPoint(), h.EntryPoint())
	fmt.Printf("ABI: %s\n", h.ABIString())
	fmt.Printf("Machine: %s\n", h.MachineString())
	fmt.Printf("Version: %d\n", h.Version())
	fmt.Printf("Number of Segments: %d\n", len(file.Segments()))
	fmt.Printf("Number of Sections: %d\n", len(file.Sections()))

	if needed := file.NeededLibraries(); len(needed) > 0 {
		fmt.Println("Needed Libraries:")
		for _, lib := range needed {
			fmt.Printf("  %s\n", lib)
		}
	}
}
