package arith

// TreeNode is a node of a probability tree. The Left branch is taken if
// the decoded bit is false, which happens with probability Prob/256. A
// branch that is not smaller than the length of the node table marks a
// leaf, whose value is provided by LeafValue.
type TreeNode struct {
	Left  uint8
	Right uint8
	Prob  uint8
	Index uint8
}

// leafFlag marks the branches leading to leaves. Node tables must
// therefore be shorter than leafFlag.
const leafFlag = 0x80

// maxTreeNodes is the maximum number of nodes supported for a tree.
const maxTreeNodes = leafFlag

// LeafValue returns the value of the leaf reached by branch b.
func LeafValue(b uint8) int8 {
	return int8(b &^ leafFlag)
}

// prepareBranch converts an entry of the branch notation into a
// TreeNode branch.
func prepareBranch(t int8) uint8 {
	if t > 0 {
		return uint8(t) / 2
	}
	return leafFlag | uint8(-t)
}

// MakeTree creates the node table for a tree given in the notation of
// the VP8 format. Entries 2i and 2i+1 of branches describe the left and
// right branch of node i. A positive entry is twice the index of the
// node it leads to, a zero or negative entry is the negated value of a
// leaf. The probability of node i is probs[i].
//
// The function panics if the tree is malformed. Every positive entry
// must lead to a node following the current one, so every walk through
// the tree terminates.
func MakeTree(branches []int8, probs []uint8) []TreeNode {
	nodes := make([]TreeNode, len(probs))
	FillTree(nodes, branches, probs)
	return nodes
}

// FillTree is MakeTree for an existing node table, which must have the
// length of probs. It allows updating the probabilities of a tree
// without allocation.
func FillTree(nodes []TreeNode, branches []int8, probs []uint8) {
	if len(nodes) != len(probs) {
		panic("arith: node table and probabilities differ in length")
	}
	if len(branches) != 2*len(probs) {
		panic("arith: tree needs two branches per probability")
	}
	if len(probs) > maxTreeNodes {
		panic("arith: too many tree nodes")
	}
	for i, t := range branches {
		switch {
		case t > 0:
			if t&1 != 0 || int(t) >= len(branches) {
				panic("arith: branch doesn't lead to a node")
			}
			if int(t)/2 <= i/2 {
				panic("arith: branch doesn't lead to a following node")
			}
		case t == -128:
			panic("arith: leaf value out of range")
		}
	}
	for i := range nodes {
		nodes[i] = TreeNode{
			Left:  prepareBranch(branches[2*i]),
			Right: prepareBranch(branches[2*i+1]),
			Prob:  probs[i],
			Index: uint8(i),
		}
	}
}
