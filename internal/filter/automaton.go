package filter

// The automaton is an Aho-Corasick trie over normalized terms. Nodes live
// in a flat arena and refer to each other by index, so failure links are
// plain back-references with no ownership of their own. Once built, an
// automaton is never mutated; dictionary changes produce a whole new one.

type acNode struct {
	children map[rune]int32
	fail     int32
	// term is non-empty only on terminal nodes and holds the normalized
	// term that ends at this node.
	term string
}

type automaton struct {
	nodes []acNode
}

// buildAutomaton compiles a term snapshot into a lookup-ready automaton.
// An empty snapshot yields a root-only automaton that matches nothing.
// Construction is linear in the total number of runes across all terms.
func buildAutomaton(terms map[string]RiskTier) *automaton {
	a := &automaton{nodes: []acNode{{children: map[rune]int32{}}}}
	for term := range terms {
		if term == "" {
			continue
		}
		a.insert(term)
	}
	a.linkFailures()
	return a
}

func (a *automaton) insert(term string) {
	cur := int32(0)
	for _, r := range term {
		next, ok := a.nodes[cur].children[r]
		if !ok {
			next = int32(len(a.nodes))
			a.nodes = append(a.nodes, acNode{children: map[rune]int32{}})
			a.nodes[cur].children[r] = next
		}
		cur = next
	}
	a.nodes[cur].term = term
}

// linkFailures wires every node's failure link via breadth-first
// traversal: a node reached by rune r from parent p fails to the child r
// of the first node on p's failure chain that has one, or to the root.
// Root children fail to the root (index 0, the arena zero value).
func (a *automaton) linkFailures() {
	queue := make([]int32, 0, len(a.nodes))
	for _, child := range a.nodes[0].children {
		queue = append(queue, child)
	}
	for i := 0; i < len(queue); i++ {
		cur := queue[i]
		for r, child := range a.nodes[cur].children {
			f := a.nodes[cur].fail
			for f != 0 {
				if _, ok := a.nodes[f].children[r]; ok {
					break
				}
				f = a.nodes[f].fail
			}
			if next, ok := a.nodes[f].children[r]; ok {
				a.nodes[child].fail = next
			}
			queue = append(queue, child)
		}
	}
}

// findAll scans already-normalized text in one pass and returns every
// distinct term that occurs in it, in order of first occurrence. Matches
// reachable only through failure links (overlapping and sub-word matches)
// are included.
func (a *automaton) findAll(text string) []string {
	var matched []string
	var seen map[string]struct{}

	cur := int32(0)
	for _, r := range text {
		for cur != 0 {
			if _, ok := a.nodes[cur].children[r]; ok {
				break
			}
			cur = a.nodes[cur].fail
		}
		if next, ok := a.nodes[cur].children[r]; ok {
			cur = next
		}
		for t := cur; t != 0; t = a.nodes[t].fail {
			term := a.nodes[t].term
			if term == "" {
				continue
			}
			if seen == nil {
				seen = make(map[string]struct{})
			}
			if _, dup := seen[term]; dup {
				continue
			}
			seen[term] = struct{}{}
			matched = append(matched, term)
		}
	}
	return matched
}

func (a *automaton) size() int {
	return len(a.nodes)
}
