package jit

// Label identifies a branch target recorded by the front end.
type Label uint32

// UndefinedLabel is the reserved label value meaning "no label". It also
// terminates every alias chain.
const UndefinedLabel Label = ^Label(0)

const minLabelInfo = 64

// RecordLabel binds a label to the block. A block can carry any number of
// labels; each new one is prepended to the block's alias chain.
func (b *Block) RecordLabel(label Label) error {
	if label == UndefinedLabel {
		return NewBuildError(ErrUndefinedLabel, PhaseInternal, label,
			"cannot bind the reserved undefined label")
	}

	f := b.fn
	if int(label) >= len(f.labelInfo) {
		num := len(f.labelInfo)
		if num < minLabelInfo {
			num = minLabelInfo
		}
		for num <= int(label) {
			num *= 2
		}
		info := make([]labelInfo, num)
		copy(info, f.labelInfo)
		f.labelInfo = info
	}

	f.labelInfo[label].block = b
	f.labelInfo[label].alias = b.label
	b.label = label
	return nil
}

// BlockFromLabel returns the block a label is bound to, or nil if the label
// is unbound.
func (f *Function) BlockFromLabel(label Label) *Block {
	if label != UndefinedLabel && int(label) < len(f.labelInfo) {
		return f.labelInfo[label].block
	}
	return nil
}

// Label returns the first label bound to the block, or UndefinedLabel if the
// block is unlabeled.
func (b *Block) Label() Label {
	return b.label
}

// NextLabel enumerates the labels bound to a block. Pass UndefinedLabel to
// get the first label; pass the previous result to get the next one.
// Returns UndefinedLabel at the end of the chain, or if label is not bound
// to this block.
func (b *Block) NextLabel(label Label) Label {
	if label == UndefinedLabel {
		return b.label
	}
	f := b.fn
	if int(label) < len(f.labelInfo) && f.labelInfo[label].block == b {
		return f.labelInfo[label].alias
	}
	return UndefinedLabel
}

// mergeLabels re-points every label on the chain starting at label to dst,
// splicing the chain onto dst's own.
func (f *Function) mergeLabels(dst *Block, label Label) {
	for label != UndefinedLabel {
		info := &f.labelInfo[label]
		alias := info.alias
		info.block = dst
		info.alias = dst.label
		dst.label = label
		label = alias
	}
}
