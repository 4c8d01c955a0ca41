// Package ucd holds the Unicode character database records and their wire
// codecs.
//
// The code point space [0, 0x110000) is split into NumChunks chunks of
// ChunkSize code points. Each chunk is stored as one ChunkData message under
// ChunkNameOf(i). Code points without a CharacterData record are
// unassigned; DeriveCharacter fills in their category and label.
//
// The package also parses UnicodeData.txt (Scanner) and builds a per
// category code point index backed by roaring bitmaps (CategoryIndex).
package ucd
