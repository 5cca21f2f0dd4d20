package markdown

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/cozy/contentmodel-go/format"
	"github.com/cozy/contentmodel-go/model"
)

// BlockSerializerFunc is the function to serialize a block.
type BlockSerializerFunc func(state *SerializerState, block model.Block, parent model.BlockGroup, index int)

// SegmentSerializerFunc is the function to serialize a segment of a
// paragraph.
type SegmentSerializerFunc func(state *SerializerState, segment model.Segment, parent []model.Segment, index int)

// MarkOpenCloseFunc computes the opening or closing string of a mark.
type MarkOpenCloseFunc func(state *SerializerState, mark Mark, parent []model.Segment, index int) string

// MarkSerializerSpec is the serializer info for a mark.
type MarkSerializerSpec struct {
	Open                     interface{} // Can be a string or a MarkOpenCloseFunc
	Close                    interface{} // Can be a string or a MarkOpenCloseFunc
	Mixable                  bool
	ExpelEnclosingWhitespace bool
	NoEscape                 bool
}

// Mark is an inline decoration of a segment that markdown writes as
// delimiters around the text.
type Mark struct {
	Name string
	Link *model.Link
}

// Eq reports whether two marks are the same.
func (m Mark) Eq(other Mark) bool {
	if m.Name != other.Name {
		return false
	}
	if m.Link == nil || other.Link == nil {
		return m.Link == other.Link
	}
	return m.Link.Format.Href == other.Link.Format.Href && m.Link.Format.Title == other.Link.Format.Title
}

// IsInSet reports whether the mark is in the set.
func (m Mark) IsInSet(set []Mark) bool {
	for _, other := range set {
		if m.Eq(other) {
			return true
		}
	}
	return false
}

// SegmentMarks returns the marks of a segment. The order is the nesting
// order: inline code is always innermost.
func SegmentMarks(segment model.Segment) []Mark {
	if segment == nil {
		return nil
	}
	var marks []Mark
	f := segment.SegmentFormat()
	if model.IsTrue(f.Italic) {
		marks = append(marks, Mark{Name: "em"})
	}
	if format.IsBoldWeight(f.FontWeight) {
		marks = append(marks, Mark{Name: "strong"})
	}
	if model.IsTrue(f.Strikethrough) {
		marks = append(marks, Mark{Name: "strikethrough"})
	}
	if link := model.SegmentLink(segment); link != nil {
		marks = append(marks, Mark{Name: "link", Link: link})
	}
	if model.SegmentCode(segment) != nil {
		marks = append(marks, Mark{Name: "code"})
	}
	return marks
}

// Options are the options of a serialization.
type Options struct {
	// TightLists renders list items without blank lines between them.
	TightLists bool
}

// Serializer holds the functions serializing a Content Model document
// as Markdown/CommonMark text.
type Serializer struct {
	Blocks   map[string]BlockSerializerFunc
	Segments map[model.SegmentType]SegmentSerializerFunc
	Marks    map[string]MarkSerializerSpec
}

// NewSerializer constructs a serializer with the given configuration.
// Blocks are keyed by their block type, or their block group type for
// block groups (see BlockKey).
//
// The marks hold `Open` and `Close` strings, or functions computing them
// from the segments around the mark. A `Mixable` mark may be opened and
// closed in a different order than other mixable marks (you can say
// `**a *b***` and `*a **b***`, but not “ `a *b*` “). A `NoEscape` mark
// must always be the innermost one. `ExpelEnclosingWhitespace` moves the
// white space at the edges of the marked text outside the delimiters, as
// CommonMark does not permit enclosing whitespace inside emphasis marks.
func NewSerializer(
	blocks map[string]BlockSerializerFunc,
	segments map[model.SegmentType]SegmentSerializerFunc,
	marks map[string]MarkSerializerSpec,
) *Serializer {
	return &Serializer{
		Blocks:   blocks,
		Segments: segments,
		Marks:    marks,
	}
}

// Serialize the content of the given group to
// [CommonMark](http://commonmark.org/).
func (s *Serializer) Serialize(content model.BlockGroup, options ...Options) string {
	var opts Options
	if len(options) > 0 {
		opts = options[0]
	}
	state := NewSerializerState(s, opts)
	state.RenderContent(content)
	return state.Out
}

// BlockKey returns the key of a block in Serializer.Blocks.
func BlockKey(block model.Block) string {
	if g, ok := model.AsBlockGroup(block); ok {
		return string(g.BlockGroupType())
	}
	return string(block.BlockType())
}

var backticksRegexp = regexp.MustCompile("`{3,}")

// DefaultSerializer serializes paragraphs, headings, quotes, lists, code,
// dividers and tables.
var DefaultSerializer = NewSerializer(map[string]BlockSerializerFunc{
	string(model.GroupFormatContainer): func(state *SerializerState, block model.Block, _ model.BlockGroup, _ int) {
		container := block.(*model.FormatContainer)
		if container.TagName != "blockquote" {
			state.RenderContent(container)
			return
		}
		state.WrapBlock("> ", nil, block, func() { state.RenderContent(container) })
	},
	string(model.GroupCode): func(state *SerializerState, block model.Block, _ model.BlockGroup, _ int) {
		code := block.(*model.Code)
		fence := "```"
		content := codeContent(code)
		matches := backticksRegexp.FindAllString(content, -1)
		for _, backticks := range matches {
			if len(backticks) >= len(fence) {
				fence = backticks + "`"
			}
		}

		state.Write(fence + code.Language + "\n")
		state.Text(content, false)
		state.EnsureNewLine()
		state.Write(fence)
		state.CloseBlock(block)
	},
	string(model.BlockTypeParagraph): func(state *SerializerState, block model.Block, _ model.BlockGroup, _ int) {
		p := block.(*model.Paragraph)
		if p.Decorator != nil {
			if level := headingLevel(p.Decorator.TagName); level > 0 {
				state.Write(strings.Repeat("#", level) + " ")
			}
		}
		state.RenderInline(p.Segments)
		state.CloseBlock(block)
	},
	string(model.BlockTypeDivider): func(state *SerializerState, block model.Block, _ model.BlockGroup, _ int) {
		if block.(*model.Divider).TagName != "hr" {
			return
		}
		state.Write("---")
		state.CloseBlock(block)
	},
	string(model.GroupListItem): func(state *SerializerState, block model.Block, _ model.BlockGroup, _ int) {
		state.RenderContent(block.(*model.ListItem))
	},
	string(model.GroupGeneral): func(state *SerializerState, block model.Block, _ model.BlockGroup, _ int) {
		state.RenderContent(block.(*model.GeneralBlock))
	},
	string(model.BlockTypeTable): func(state *SerializerState, block model.Block, _ model.BlockGroup, _ int) {
		t := block.(*model.Table)
		for r, row := range t.Rows {
			cells := make([]string, len(row.Cells))
			for c, cell := range row.Cells {
				if !cell.SpanLeft && !cell.SpanAbove {
					cells[c] = state.cellText(cell)
				}
			}
			if r > 0 {
				state.EnsureNewLine()
			}
			state.Write("| " + strings.Join(cells, " | ") + " |")
			if r == 0 {
				state.EnsureNewLine()
				state.Write("|" + strings.Repeat(" --- |", len(row.Cells)))
			}
		}
		state.CloseBlock(block)
	},
}, map[model.SegmentType]SegmentSerializerFunc{
	model.SegmentText: func(state *SerializerState, segment model.Segment, _ []model.Segment, _ int) {
		state.Text(segment.(*model.Text).Text, !state.InAutoLink)
	},
	model.SegmentImage: func(state *SerializerState, segment model.Segment, _ []model.Segment, _ int) {
		img := segment.(*model.Image)
		src := strings.ReplaceAll(img.Src, "(", "\\(")
		src = strings.ReplaceAll(src, ")", "\\)")
		title := ""
		if img.Title != "" {
			title = ` "` + strings.ReplaceAll(img.Title, `"`, `\"`) + `"`
		}
		state.Write(fmt.Sprintf("![%s](%s)%s", state.Esc(img.Alt), src, title))
	},
	model.SegmentBr: func(state *SerializerState, _ model.Segment, parent []model.Segment, index int) {
		for i := index; i < len(parent); i++ {
			if parent[i].SegmentType() != model.SegmentBr {
				state.Write("\\\n")
				return
			}
		}
	},
	model.SegmentGeneral: func(state *SerializerState, segment model.Segment, _ []model.Segment, _ int) {
		state.Text(plainText(segment.(*model.GeneralSegment)))
	},
}, map[string]MarkSerializerSpec{
	"em":            {Open: "*", Close: "*", Mixable: true, ExpelEnclosingWhitespace: true},
	"strong":        {Open: "**", Close: "**", Mixable: true, ExpelEnclosingWhitespace: true},
	"strikethrough": {Open: "~~", Close: "~~", Mixable: true, ExpelEnclosingWhitespace: true},
	"link": {
		Open: MarkOpenCloseFunc(func(state *SerializerState, mark Mark, parent []model.Segment, index int) string {
			state.InAutoLink = isPlainURL(mark, parent, index)
			if state.InAutoLink {
				return "<"
			}
			return "["
		}),
		Close: MarkOpenCloseFunc(func(state *SerializerState, mark Mark, _ []model.Segment, _ int) string {
			if state.InAutoLink {
				state.InAutoLink = false
				return ">"
			}
			href := strings.ReplaceAll(mark.Link.Format.Href, "(", "\\(")
			href = strings.ReplaceAll(href, ")", "\\)")
			href = strings.ReplaceAll(href, `"`, `\"`)
			title := mark.Link.Format.Title
			if title != "" {
				title = ` "` + strings.ReplaceAll(title, `"`, `\"`) + `"`
			}
			return fmt.Sprintf("](%s%s)", href, title)
		}),
		Mixable: true,
	},
	"code": {
		Open: MarkOpenCloseFunc(func(_ *SerializerState, _ Mark, parent []model.Segment, index int) string {
			return backticksFor(segmentAt(parent, index), -1)
		}),
		Close: MarkOpenCloseFunc(func(_ *SerializerState, _ Mark, parent []model.Segment, index int) string {
			return backticksFor(segmentAt(parent, index-1), 1)
		}),
		NoEscape: true,
	},
})

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

func segmentAt(segments []model.Segment, index int) model.Segment {
	if index < 0 || index >= len(segments) {
		return nil
	}
	return segments[index]
}

// codeContent is the text of a code block, one line per paragraph.
func codeContent(code *model.Code) string {
	var lines []string
	for _, block := range code.Blocks {
		if p, ok := block.(*model.Paragraph); ok {
			var line strings.Builder
			for _, segment := range p.Segments {
				switch s := segment.(type) {
				case *model.Text:
					line.WriteString(s.Text)
				case *model.Br:
					line.WriteString("\n")
				}
			}
			lines = append(lines, line.String())
		}
	}
	return strings.Join(lines, "\n")
}

// plainText is the text of the paragraphs under a group.
func plainText(group model.BlockGroup) string {
	var b strings.Builder
	for _, block := range group.ChildBlocks() {
		switch block := block.(type) {
		case *model.Paragraph:
			for _, segment := range block.Segments {
				if t, ok := segment.(*model.Text); ok {
					b.WriteString(t.Text)
				}
			}
		default:
			if g, ok := model.AsBlockGroup(block); ok {
				b.WriteString(plainText(g))
			}
		}
	}
	return b.String()
}

func backticksFor(segment model.Segment, side int) string {
	length := 0
	if t, ok := segment.(*model.Text); ok {
		ticks := strings.FieldsFunc(t.Text, func(r rune) bool { return r != '`' })
		for _, tick := range ticks {
			if l := len(tick); l > length {
				length = l
			}
		}
	}
	result := "`"
	if length > 0 && side > 0 {
		result = " `"
	}
	for i := 0; i < length; i++ {
		result += "`"
	}
	if length > 0 && side < 0 {
		result += " "
	}
	return result
}

func isPlainURL(link Mark, parent []model.Segment, index int) bool {
	if link.Link.Format.Title != "" {
		return false
	}
	href := link.Link.Format.Href
	if !strings.Contains(href, ":") {
		return false
	}
	content, ok := segmentAt(parent, index).(*model.Text)
	if !ok {
		return false
	}
	marks := SegmentMarks(content)
	if content.Text != href || !marks[len(marks)-1].Eq(link) {
		return false
	}
	if index == len(parent)-1 {
		return true
	}
	return !link.IsInSet(SegmentMarks(parent[index+1]))
}

// SerializerState is an object used to track state and expose methods
// related to markdown serialization. Instances are passed to block, segment
// and mark serialization functions.
type SerializerState struct {
	*Serializer
	Delim        string
	Out          string
	Closed       model.Block
	InAutoLink   bool
	AtBlockStart bool
	InTightList  bool
	tightLists   bool
}

// NewSerializerState creates the state of one serialization.
func NewSerializerState(serializer *Serializer, options Options) *SerializerState {
	return &SerializerState{
		Serializer: serializer,
		tightLists: options.TightLists,
	}
}

func (s *SerializerState) flushClose(size ...int) {
	if s.Closed == nil {
		return
	}
	s.EnsureNewLine()
	siz := 2
	if len(size) > 0 {
		siz = size[0]
	}
	if siz > 1 {
		delimMin := strings.TrimRightFunc(s.Delim, unicode.IsSpace)
		for i := 1; i < siz; i++ {
			s.Out += delimMin + "\n"
		}
	}
	s.Closed = nil
}

// WrapBlock renders a block, prefixing each line with `delim`, and the
// first line in `firstDelim`. `block` is closed at the end, and `f`
// renders the content of the block.
func (s *SerializerState) WrapBlock(delim string, firstDelim *string, block model.Block, f func()) {
	old := s.Delim
	d := delim
	if firstDelim != nil {
		d = *firstDelim
	}
	s.Write(d)
	s.Delim += delim
	f()
	s.Delim = old
	s.CloseBlock(block)
}

func (s *SerializerState) atBlank() bool {
	if len(s.Out) == 0 {
		return true
	}
	return s.Out[len(s.Out)-1] == '\n'
}

// EnsureNewLine ensures the current content ends with a newline.
func (s *SerializerState) EnsureNewLine() {
	if !s.atBlank() {
		s.Out += "\n"
	}
}

// Write prepares the state for writing output (closing closed paragraphs,
// adding delimiters, and so on), and then optionally add content
// (unescaped) to the output.
func (s *SerializerState) Write(content ...string) {
	s.flushClose()
	if s.Delim != "" && s.atBlank() {
		s.Out += s.Delim
	}
	if len(content) > 0 {
		s.Out += content[0]
	}
}

// CloseBlock closes the given block.
func (s *SerializerState) CloseBlock(block model.Block) {
	s.Closed = block
}

var textRegexp1 = regexp.MustCompile(`(^|[^\\])\!$`)

// Text adds the given text to the document. When escape is not `false`, it
// will be escaped.
func (s *SerializerState) Text(text string, escape ...bool) {
	lines := strings.Split(text, "\n")
	esc := true
	if len(escape) > 0 {
		esc = escape[0]
	}
	for i, line := range lines {
		s.Write()
		// Escape exclamation marks in front of links
		if !esc && strings.HasPrefix(line, "[") && textRegexp1.MatchString(s.Out) {
			s.Out = s.Out[:len(s.Out)-1] + "\\!"
		}
		if esc {
			s.Out += s.Esc(line, s.AtBlockStart)
			if line != "" {
				s.AtBlockStart = false
			}
		} else {
			s.Out += line
		}
		if i != len(lines)-1 {
			s.Out += "\n"
		}
	}
}

// Render the given block.
func (s *SerializerState) Render(block model.Block, parent model.BlockGroup, index int) {
	if fn, ok := s.Blocks[BlockKey(block)]; ok {
		fn(s, block, parent, index)
	}
}

// RenderContent renders the children of `parent` as blocks. Runs of list
// items are rendered as lists.
func (s *SerializerState) RenderContent(parent model.BlockGroup) {
	blocks := parent.ChildBlocks()
	for i := 0; i < len(blocks); i++ {
		if _, ok := blocks[i].(*model.ListItem); !ok {
			s.Render(blocks[i], parent, i)
			continue
		}
		var items []*model.ListItem
		for ; i < len(blocks); i++ {
			item, ok := blocks[i].(*model.ListItem)
			if !ok {
				break
			}
			items = append(items, item)
		}
		i--
		s.RenderList(items, parent)
	}
}

// renderSegment renders a segment with its registered function.
func (s *SerializerState) renderSegment(segment model.Segment, parent []model.Segment, index int) {
	if fn, ok := s.Segments[segment.SegmentType()]; ok {
		fn(s, segment, parent, index)
	}
}

var inlineRegexp = regexp.MustCompile(`^(\s*)(.*?)(\s*)$`)

// RenderInline renders segments as inline content.
func (s *SerializerState) RenderInline(segments []model.Segment) {
	parent := make([]model.Segment, 0, len(segments))
	for _, segment := range segments {
		if segment.SegmentType() != model.SegmentSelectionMarker {
			parent = append(parent, segment)
		}
	}

	s.AtBlockStart = true
	var active []Mark
	var trailing string

	progress := func(node model.Segment, index int) {
		marks := SegmentMarks(node)

		// Remove marks from line breaks that are the last segment inside
		// that mark to prevent parser edge cases with new lines just
		// before closing marks.
		if node != nil && node.SegmentType() == model.SegmentBr {
			var filtered []Mark
			for _, m := range marks {
				next := segmentAt(parent, index+1)
				if next == nil || !m.IsInSet(SegmentMarks(next)) {
					continue
				}
				if t, ok := next.(*model.Text); !ok || strings.TrimSpace(t.Text) != "" {
					filtered = append(filtered, m)
				}
			}
			marks = filtered
		}

		leading := trailing
		trailing = ""
		// If whitespace has to be expelled from the node, adjust
		// leading and trailing accordingly.
		if t, ok := node.(*model.Text); ok {
			expel := false
			for _, mark := range marks {
				if info, ok := s.Marks[mark.Name]; ok && info.ExpelEnclosingWhitespace {
					if mark.IsInSet(active) {
						continue
					}
					next := segmentAt(parent, index+1)
					if next == nil || !mark.IsInSet(SegmentMarks(next)) {
						expel = true
						break
					}
				}
			}
			if expel {
				parts := inlineRegexp.FindStringSubmatch(t.Text)
				if len(parts) == 4 {
					leading += parts[1]
					trailing = parts[3]
					if parts[1] != "" || parts[3] != "" {
						if inner := parts[2]; inner != "" {
							copied := *t
							copied.Text = inner
							node = &copied
						} else {
							node = nil
							marks = active
						}
					}
				}
			}
		}

		var inner *Mark
		if len(marks) > 0 {
			inner = &marks[len(marks)-1]
		}
		noEsc := inner != nil && s.Marks[inner.Name].NoEscape
		length := len(marks)
		if noEsc {
			length--
		}

		// Try to reorder 'mixable' marks, such as em and strong, which
		// in Markdown may be opened and closed in different order, so
		// that order of the marks for the token matches the order in
		// active.
		for i, mark := range marks {
			if !s.Marks[mark.Name].Mixable {
				break
			}
			for j, other := range active {
				if !s.Marks[other.Name].Mixable {
					break
				}
				if mark.Eq(other) {
					mixed := make([]Mark, 0, len(marks))
					if i > j {
						mixed = append(mixed, marks[:j]...)
						mixed = append(mixed, mark)
						mixed = append(mixed, marks[j:i]...)
						mixed = append(mixed, marks[i+1:]...)
					} else {
						mixed = append(mixed, marks[:i]...)
						if i != j {
							mixed = append(mixed, marks[i+1:j]...)
						}
						mixed = append(mixed, mark)
						mixed = append(mixed, marks[j:]...)
					}
					marks = mixed
					break
				}
			}
		}

		// Find the prefix of the mark set that didn't change
		min := len(marks)
		if l := len(active); l < min {
			min = l
		}
		keep := 0
		for keep < min && marks[keep].Eq(active[keep]) {
			keep++
		}

		// Close the marks that need to be closed
		for keep < len(active) {
			s.Text(s.MarkString(active[len(active)-1], false, parent, index), false)
			active = active[:len(active)-1]
		}

		// Output any previously expelled trailing whitespace outside the marks
		if leading != "" {
			s.Text(leading)
		}

		// Open the marks that need to be opened
		if node != nil {
			for len(active) < length {
				add := marks[len(active)]
				active = append(active, add)
				s.Text(s.MarkString(add, true, parent, index), false)
			}

			// Render the segment. Special case code marks, since their
			// content may not be escaped.
			if t, ok := node.(*model.Text); ok && noEsc {
				s.Text(s.MarkString(*inner, true, parent, index)+t.Text+
					s.MarkString(*inner, false, parent, index+1), false)
			} else {
				s.renderSegment(node, parent, index)
			}
		}
	}

	for i, segment := range parent {
		progress(segment, i)
	}
	progress(nil, len(parent))
	s.AtBlockStart = false
}

type listCounter struct {
	listType string
	number   int
	width    int
}

func (c listCounter) marker() string {
	if c.listType == "OL" {
		return fmt.Sprintf("%d. ", c.number)
	}
	return "* "
}

// RenderList renders consecutive list items. Their levels give the
// nesting: an item is indented by the markers of its outer levels.
func (s *SerializerState) RenderList(items []*model.ListItem, parent model.BlockGroup) {
	if _, ok := s.Closed.(*model.ListItem); ok {
		s.flushClose(3)
	} else if s.InTightList {
		s.flushClose(1)
	}

	prevTight := s.InTightList
	s.InTightList = s.tightLists
	var stack []listCounter
	for i, item := range items {
		if len(item.Levels) == 0 {
			s.RenderContent(item)
			continue
		}
		if i > 0 && s.tightLists {
			s.flushClose(1)
		}

		depth := len(item.Levels)
		if len(stack) > depth {
			stack = stack[:depth]
		}
		for k := range stack {
			if stack[k].listType != item.Levels[k].ListType {
				stack = stack[:k]
				break
			}
		}
		for len(stack) < depth {
			c := listCounter{listType: item.Levels[len(stack)].ListType}
			c.width = len(c.marker())
			stack = append(stack, c)
		}

		top := &stack[depth-1]
		if start := item.Levels[depth-1].Format.StartNumberOverride; start > 0 {
			top.number = start
		} else {
			top.number++
		}
		marker := top.marker()
		top.width = len(marker)

		indent := ""
		for _, c := range stack[:depth-1] {
			indent += strings.Repeat(" ", c.width)
		}
		first := indent + marker
		s.WrapBlock(indent+strings.Repeat(" ", len(marker)), &first, item, func() {
			s.Render(item, parent, i)
		})
	}
	s.InTightList = prevTight
}

// cellText renders the paragraphs of a table cell on one line.
func (s *SerializerState) cellText(cell *model.TableCell) string {
	var parts []string
	var collect func(group model.BlockGroup)
	collect = func(group model.BlockGroup) {
		for _, block := range group.ChildBlocks() {
			if p, ok := block.(*model.Paragraph); ok {
				sub := NewSerializerState(s.Serializer, Options{})
				sub.RenderInline(p.Segments)
				parts = append(parts, strings.ReplaceAll(sub.Out, "\n", " "))
			} else if g, ok := model.AsBlockGroup(block); ok {
				collect(g)
			}
		}
	}
	collect(cell)
	return strings.ReplaceAll(strings.Join(parts, " "), "|", "\\|")
}

var (
	escRegexp1 = regexp.MustCompile("([`*\\\\~\\[\\]])")
	escRegexp2 = regexp.MustCompile(`(\b_)|(_\b)`)
	escRegexp3 = regexp.MustCompile(`^([#\-*+>])`)
	escRegexp4 = regexp.MustCompile(`(\s*\d+)\.`)
)

// Esc escapes the given string so that it can safely appear in Markdown
// content. If `startOfLine` is true, also escape characters that have special
// meaning only at the start of the line.
func (s *SerializerState) Esc(str string, startOfLine ...bool) string {
	start := false
	if len(startOfLine) > 0 {
		start = startOfLine[0]
	}
	str = escRegexp1.ReplaceAllString(str, "\\$1")
	str = escRegexp2.ReplaceAllString(str, "\\_")
	if start {
		str = escRegexp3.ReplaceAllString(str, "\\$1")
		str = escRegexp4.ReplaceAllString(str, "$1\\.")
	}
	return str
}

// Quote wraps the string as a quote.
func (s *SerializerState) Quote(str string) string {
	wrap := `()`
	if !strings.Contains(str, `"`) {
		wrap = `""`
	} else if !strings.Contains(str, "'") {
		wrap = "''"
	}
	return wrap[:1] + str + wrap[1:]
}

// MarkString gets the markdown string for a given opening or closing mark.
func (s *SerializerState) MarkString(mark Mark, open bool, parent []model.Segment, index int) string {
	info := s.Marks[mark.Name]
	value := info.Open
	if !open {
		value = info.Close
	}
	switch value := value.(type) {
	case string:
		return value
	case MarkOpenCloseFunc:
		return value(s, mark, parent, index)
	}
	return ""
}
