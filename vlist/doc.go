// Package vlist models the bidirectionally paginated code point list shown
// by the chart.
//
// A List holds the known code points of a contiguous, fully loaded part of
// the code point space (its frontier) split into rows. Rows are Discrete
// (up to RowWidth arbitrary code points) or Aligned (one RowWidth block of
// the code point space holding at least AlignThreshold known code points).
//
// Lists are values. ExpandBackward, ExpandForward, CutOffBackward and
// CutOffForward return a new List and never modify the receiver:
//
//	l := vlist.New(0x3040)
//	l = l.ExpandForward(hiragana, vlist.Range{Low: 0x3040, High: 0x3100})
//	lay := vlist.Layout(l, 0x3042)
//
// Every row has a persistent key (Offset plus its position). Backward
// growth lowers Offset by the number of rows it adds, so rows already on
// screen keep their keys.
package vlist
