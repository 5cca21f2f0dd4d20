package format

import "github.com/cozy/contentmodel-go/model"

// Chains holds one chain per format category.
type Chains struct {
	Segment            Chain[model.SegmentFormat]
	SegmentOnBlock     Chain[model.SegmentFormat]
	SegmentOnTableCell Chain[model.SegmentFormat]
	Block              Chain[model.BlockFormat]
	Container          Chain[model.ContainerFormat]
	Table              Chain[model.TableFormat]
	TableCell          Chain[model.TableCellFormat]
	TableBorder        Chain[model.BorderFormat]
	ListLevel          Chain[model.ListLevelFormat]
	ListItemElement    Chain[model.ListItemFormat]
	Image              Chain[model.ImageFormat]
	Link               Chain[model.LinkFormat]
	Divider            Chain[model.DividerFormat]
	Code               Chain[model.CodeFormat]
	Entity             Chain[model.EntityFormat]
}

// Lift projects every part of a chain on B onto the category C.
func Lift[C, B any](chain Chain[B], get func(*C) *B) Chain[C] {
	result := make(Chain[C], 0, len(chain))
	for _, part := range chain {
		result = append(result, Bind(part.Name, Handler[B]{Parse: part.Parse, Apply: part.Apply}, get))
	}
	return result
}

func segmentPart(name string, h Handler[model.SegmentFormat]) Part[model.SegmentFormat] {
	return Bind(name, h, self[model.SegmentFormat])
}

func segmentChain() Chain[model.SegmentFormat] {
	return Chain[model.SegmentFormat]{
		segmentPart("textColor", TextColor),
		segmentPart("backgroundColor", BackgroundColor),
		segmentPart("fontFamily", FontFamily),
		segmentPart("fontSize", FontSize),
		segmentPart("bold", Bold),
		segmentPart("italic", Italic),
		segmentPart("underline", Underline),
		segmentPart("strikethrough", Strikethrough),
		segmentPart("superOrSubScript", SuperOrSubScript),
		segmentPart("letterSpacing", LetterSpacing),
		segmentPart("lineHeight", SegmentLineHeight),
	}
}

func segmentOnBlockChain() Chain[model.SegmentFormat] {
	return Chain[model.SegmentFormat]{
		segmentPart("textColor", TextColor),
		segmentPart("fontFamily", FontFamily),
		segmentPart("fontSize", FontSize),
		segmentPart("bold", BlockBold),
		segmentPart("italic", BlockItalic),
		segmentPart("underline", BlockUnderline),
		segmentPart("strikethrough", BlockStrikethrough),
	}
}

func blockChain() Chain[model.BlockFormat] {
	type F = model.BlockFormat
	return Chain[F]{
		Bind("backgroundColor", BlockBackgroundColor, func(f *F) *model.BackgroundColorFormat { return &f.BackgroundColorFormat }),
		Bind("direction", Direction, func(f *F) *model.DirectionFormat { return &f.DirectionFormat }),
		Bind("textAlign", TextAlign, func(f *F) *model.TextAlignFormat { return &f.TextAlignFormat }),
		Bind("margin", Margin, func(f *F) *model.MarginFormat { return &f.MarginFormat }),
		Bind("padding", Padding, func(f *F) *model.PaddingFormat { return &f.PaddingFormat }),
		Bind("border", Border, func(f *F) *model.BorderFormat { return &f.BorderFormat }),
		Bind("lineHeight", LineHeight, func(f *F) *model.LineHeightFormat { return &f.LineHeightFormat }),
		Bind("whiteSpace", WhiteSpace, func(f *F) *model.WhiteSpaceFormat { return &f.WhiteSpaceFormat }),
		Bind("textIndent", TextIndent, func(f *F) *model.TextIndentFormat { return &f.TextIndentFormat }),
	}
}

// DefaultChains returns fresh copies of the built-in chains.
func DefaultChains() *Chains {
	segment := segmentChain()
	block := blockChain()

	type container = model.ContainerFormat
	type table = model.TableFormat
	type cell = model.TableCellFormat
	type level = model.ListLevelFormat
	type item = model.ListItemFormat
	type image = model.ImageFormat
	type divider = model.DividerFormat

	return &Chains{
		Segment:            segment,
		SegmentOnBlock:     segmentOnBlockChain(),
		SegmentOnTableCell: segmentOnBlockChain(),
		Block:              block,
		Container: Lift(block, func(f *container) *model.BlockFormat { return &f.BlockFormat }).With(
			Bind("size", Size, func(f *container) *model.SizeFormat { return &f.SizeFormat }),
			Bind("display", Display, func(f *container) *model.DisplayFormat { return &f.DisplayFormat }),
		),
		Table: Chain[table]{
			Bind("id", ID, func(f *table) *model.IDFormat { return &f.IDFormat }),
			Bind("backgroundColor", BlockBackgroundColor, func(f *table) *model.BackgroundColorFormat { return &f.BackgroundColorFormat }),
			Bind("direction", Direction, func(f *table) *model.DirectionFormat { return &f.DirectionFormat }),
			Bind("margin", Margin, func(f *table) *model.MarginFormat { return &f.MarginFormat }),
			Bind("padding", Padding, func(f *table) *model.PaddingFormat { return &f.PaddingFormat }),
			Bind("border", Border, func(f *table) *model.BorderFormat { return &f.BorderFormat }),
			Bind("size", Size, func(f *table) *model.SizeFormat { return &f.SizeFormat }),
			Bind("tableLayout", TableLayout, self[table]),
		},
		TableCell: Chain[cell]{
			Bind("border", Border, func(f *cell) *model.BorderFormat { return &f.BorderFormat }),
			Bind("backgroundColor", BlockBackgroundColor, func(f *cell) *model.BackgroundColorFormat { return &f.BackgroundColorFormat }),
			Bind("padding", Padding, func(f *cell) *model.PaddingFormat { return &f.PaddingFormat }),
			Bind("direction", Direction, func(f *cell) *model.DirectionFormat { return &f.DirectionFormat }),
			Bind("textAlign", TextAlign, func(f *cell) *model.TextAlignFormat { return &f.TextAlignFormat }),
			Bind("verticalAlign", VerticalAlign, func(f *cell) *model.VerticalAlignFormat { return &f.VerticalAlignFormat }),
			Bind("wordBreak", WordBreak, func(f *cell) *model.WordBreakFormat { return &f.WordBreakFormat }),
			Bind("textColor", CellTextColor, func(f *cell) *model.TextColorFormat { return &f.TextColorFormat }),
			Bind("size", Size, func(f *cell) *model.SizeFormat { return &f.SizeFormat }),
		},
		TableBorder: Chain[model.BorderFormat]{
			Bind("border", Border, self[model.BorderFormat]),
		},
		ListLevel: Chain[level]{
			Bind("direction", Direction, func(f *level) *model.DirectionFormat { return &f.DirectionFormat }),
			Bind("textAlign", TextAlign, func(f *level) *model.TextAlignFormat { return &f.TextAlignFormat }),
			Bind("margin", Margin, func(f *level) *model.MarginFormat { return &f.MarginFormat }),
			Bind("padding", Padding, func(f *level) *model.PaddingFormat { return &f.PaddingFormat }),
			Bind("backgroundColor", BlockBackgroundColor, func(f *level) *model.BackgroundColorFormat { return &f.BackgroundColorFormat }),
			Bind("listStyleType", ListStyleType, self[level]),
			Bind("startNumber", StartNumber, self[level]),
		},
		ListItemElement: Chain[item]{
			Bind("direction", Direction, func(f *item) *model.DirectionFormat { return &f.DirectionFormat }),
			Bind("textAlign", TextAlign, func(f *item) *model.TextAlignFormat { return &f.TextAlignFormat }),
			Bind("margin", Margin, func(f *item) *model.MarginFormat { return &f.MarginFormat }),
			Bind("lineHeight", LineHeight, func(f *item) *model.LineHeightFormat { return &f.LineHeightFormat }),
			Bind("listStyleType", ItemListStyleType, self[item]),
		},
		Image: Chain[image]{
			Bind("id", ID, func(f *image) *model.IDFormat { return &f.IDFormat }),
			Bind("size", Size, func(f *image) *model.SizeFormat { return &f.SizeFormat }),
			Bind("margin", Margin, func(f *image) *model.MarginFormat { return &f.MarginFormat }),
			Bind("padding", Padding, func(f *image) *model.PaddingFormat { return &f.PaddingFormat }),
			Bind("border", Border, func(f *image) *model.BorderFormat { return &f.BorderFormat }),
			Bind("boxShadow", BoxShadow, func(f *image) *model.BoxShadowFormat { return &f.BoxShadowFormat }),
			Bind("display", Display, func(f *image) *model.DisplayFormat { return &f.DisplayFormat }),
			Bind("float", Float, func(f *image) *model.FloatFormat { return &f.FloatFormat }),
			Bind("verticalAlign", styleProperty("vertical-align", func(f *image) *string { return &f.VerticalAlign }, false), self[image]),
		},
		Link: Chain[model.LinkFormat]{
			Bind("link", Link, self[model.LinkFormat]),
		},
		Divider: Lift(block, func(f *divider) *model.BlockFormat { return &f.BlockFormat }).With(
			Bind("display", Display, func(f *divider) *model.DisplayFormat { return &f.DisplayFormat }),
			Bind("size", Size, func(f *divider) *model.SizeFormat { return &f.SizeFormat }),
		),
		Code: Chain[model.CodeFormat]{
			Bind("fontFamily", CodeFontFamily, self[model.CodeFormat]),
		},
		Entity: Chain[model.EntityFormat]{
			Bind("entity", Entity, self[model.EntityFormat]),
		},
	}
}

// Extend appends the parts of other to each chain, in order.
func (c *Chains) Extend(other *Chains) {
	if other == nil {
		return
	}
	c.Segment = c.Segment.With(other.Segment...)
	c.SegmentOnBlock = c.SegmentOnBlock.With(other.SegmentOnBlock...)
	c.SegmentOnTableCell = c.SegmentOnTableCell.With(other.SegmentOnTableCell...)
	c.Block = c.Block.With(other.Block...)
	c.Container = c.Container.With(other.Container...)
	c.Table = c.Table.With(other.Table...)
	c.TableCell = c.TableCell.With(other.TableCell...)
	c.TableBorder = c.TableBorder.With(other.TableBorder...)
	c.ListLevel = c.ListLevel.With(other.ListLevel...)
	c.ListItemElement = c.ListItemElement.With(other.ListItemElement...)
	c.Image = c.Image.With(other.Image...)
	c.Link = c.Link.With(other.Link...)
	c.Divider = c.Divider.With(other.Divider...)
	c.Code = c.Code.With(other.Code...)
	c.Entity = c.Entity.With(other.Entity...)
}

func overrideAll[C any](chain Chain[C], parts Chain[C]) Chain[C] {
	for _, part := range parts {
		chain = chain.Override(part)
	}
	return chain
}

// Override replaces parts by name with the parts of other.
func (c *Chains) Override(other *Chains) {
	if other == nil {
		return
	}
	c.Segment = overrideAll(c.Segment, other.Segment)
	c.SegmentOnBlock = overrideAll(c.SegmentOnBlock, other.SegmentOnBlock)
	c.SegmentOnTableCell = overrideAll(c.SegmentOnTableCell, other.SegmentOnTableCell)
	c.Block = overrideAll(c.Block, other.Block)
	c.Container = overrideAll(c.Container, other.Container)
	c.Table = overrideAll(c.Table, other.Table)
	c.TableCell = overrideAll(c.TableCell, other.TableCell)
	c.TableBorder = overrideAll(c.TableBorder, other.TableBorder)
	c.ListLevel = overrideAll(c.ListLevel, other.ListLevel)
	c.ListItemElement = overrideAll(c.ListItemElement, other.ListItemElement)
	c.Image = overrideAll(c.Image, other.Image)
	c.Link = overrideAll(c.Link, other.Link)
	c.Divider = overrideAll(c.Divider, other.Divider)
	c.Code = overrideAll(c.Code, other.Code)
	c.Entity = overrideAll(c.Entity, other.Entity)
}
