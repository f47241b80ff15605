package elfpp

import (
	"debug/elf"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func noteSectionFrom(data []byte) *NoteSection {
	sec := &Section{typ: elf.SHT_NOTE, size: uint64(len(data)), data: data}
	return newNoteSection(sec, NewEndianConverter(true))
}

func noteRecord(name string, desc []byte, typ uint32) []byte {
	var out []byte
	out = binary.LittleEndian.AppendUint32(out, uint32(len(name)))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(desc)))
	out = binary.LittleEndian.AppendUint32(out, typ)
	out = append(out, name...)
	for len(out)%noteAlign != 0 {
		out = append(out, 0)
	}
	out = append(out, desc...)
	for len(out)%noteAlign != 0 {
		out = append(out, 0)
	}
	return out
}

func TestNoteWalk(t *testing.T) {
	data := append(noteRecord("GNU\x00", []byte{1, 2, 3, 4}, 3),
		noteRecord("Linux\x00", []byte{9, 8, 7, 6, 5}, 1)...)
	notes := noteSectionFrom(data)

	require.Equal(t, 2, notes.NumNotes())

	first, ok := notes.Note(0)
	require.True(t, ok)
	require.Equal(t, "GNU", first.Name)
	require.Equal(t, uint32(3), first.Type)
	require.Equal(t, []byte{1, 2, 3, 4}, first.Description)

	second, ok := notes.Note(1)
	require.True(t, ok)
	require.Equal(t, "Linux", second.Name)
	require.Equal(t, uint32(1), second.Type)
	require.Equal(t, []byte{9, 8, 7, 6, 5}, second.Description)

	_, ok = notes.Note(2)
	require.False(t, ok)
	_, ok = notes.Note(-1)
	require.False(t, ok)
}

func TestNoteEmptyName(t *testing.T) {
	notes := noteSectionFrom(noteRecord("", []byte{0xFF, 0xEE}, 7))

	require.Equal(t, 1, notes.NumNotes())
	note, _ := notes.Note(0)
	require.Empty(t, note.Name)
	require.Equal(t, uint32(7), note.Type)
	require.Equal(t, []byte{0xFF, 0xEE}, note.Description)
}

func TestNoteShortTailIgnored(t *testing.T) {
	// Fewer than three alignment units of trailing bytes terminate the walk.
	data := append(noteRecord("GNU\x00", nil, 3), 1, 2, 3, 4, 5)
	notes := noteSectionFrom(data)

	require.Equal(t, 1, notes.NumNotes())
}

func TestNoteOversizedRecordStopsWalk(t *testing.T) {
	var data []byte
	data = binary.LittleEndian.AppendUint32(data, 4)
	data = binary.LittleEndian.AppendUint32(data, 0xFFFF0000)
	data = binary.LittleEndian.AppendUint32(data, 1)
	data = append(data, "GNU\x00"...)
	notes := noteSectionFrom(data)

	require.Equal(t, 1, notes.NumNotes())
	note, _ := notes.Note(0)
	require.Equal(t, "GNU", note.Name)
	require.Empty(t, note.Description)
}

func TestNoteEmptyPayload(t *testing.T) {
	notes := noteSectionFrom(nil)
	require.Zero(t, notes.NumNotes())
	require.Empty(t, notes.Notes())
}
