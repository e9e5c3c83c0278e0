package agg

import (
	"fmt"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/baijiangliang/year2018/schema"
)

// person is a node of the merge graph.
type person struct {
	id    int64
	key   string
	label string
}

func (p person) ID() int64 { return p.id }

// DOTID implements dot.Node.
func (p person) DOTID() string { return "n" + strconv.FormatInt(p.id, 10) }

// Attributes implements encoding.Attributer.
func (p person) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{Key: "label", Value: strconv.Quote(p.label)}}
}

// mergeEdge points from the merging author to the merged author.
type mergeEdge struct {
	from, to person
	count    int
}

func (e mergeEdge) From() graph.Node         { return e.from }
func (e mergeEdge) To() graph.Node           { return e.to }
func (e mergeEdge) ReversedEdge() graph.Edge { return mergeEdge{from: e.to, to: e.from, count: e.count} }
func (e mergeEdge) Weight() float64          { return float64(e.count) }

// Attributes implements encoding.Attributer.
func (e mergeEdge) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{Key: "label", Value: strconv.Itoa(e.count)}}
}

// Collaborator is one neighbour of the user in the merge graph.
type Collaborator struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Merge    int    `json:"merge"`
	MergedBy int    `json:"merged_by"`
}

// Total is the number of merges in both directions.
func (c Collaborator) Total() int { return c.Merge + c.MergedBy }

// MergeGraph is the directed collaboration graph around the tracked user.
// An edge u -> v with weight w means u merged v's work w times.
type MergeGraph struct {
	g      *simple.WeightedDirectedGraph
	user   person
	people []person
}

// NewMergeGraph builds the graph for stats. Node labels are the readable
// names, falling back to the collaborator key.
func NewMergeGraph(userName string, stats map[string]schema.MergeStat) *MergeGraph {
	mg := &MergeGraph{
		g:    simple.NewWeightedDirectedGraph(0, 0),
		user: person{id: 0, key: "", label: userName},
	}
	mg.g.AddNode(mg.user)

	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for i, k := range keys {
		st := stats[k]
		label := st.ReadableName
		if label == "" {
			label = k
		}
		p := person{id: int64(i + 1), key: k, label: label}
		mg.g.AddNode(p)
		mg.people = append(mg.people, p)
		if st.Merge > 0 {
			mg.g.SetWeightedEdge(mergeEdge{from: mg.user, to: p, count: st.Merge})
		}
		if st.MergedBy > 0 {
			mg.g.SetWeightedEdge(mergeEdge{from: p, to: mg.user, count: st.MergedBy})
		}
	}
	return mg
}

// Collaborators lists everyone connected to the user, most merges first.
func (mg *MergeGraph) Collaborators() []Collaborator {
	out := make([]Collaborator, 0, len(mg.people))
	for _, p := range mg.people {
		c := Collaborator{Key: p.key, Name: p.label}
		if w, ok := mg.g.Weight(mg.user.id, p.id); ok {
			c.Merge = int(w)
		}
		if w, ok := mg.g.Weight(p.id, mg.user.id); ok {
			c.MergedBy = int(w)
		}
		if c.Total() > 0 {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total() != out[j].Total() {
			return out[i].Total() > out[j].Total()
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// Edges returns the number of directed merge relations.
func (mg *MergeGraph) Edges() int {
	return mg.g.Edges().Len()
}

// DOT encodes the graph in Graphviz format.
func (mg *MergeGraph) DOT() ([]byte, error) {
	b, err := dot.Marshal(mg.g, "merges", "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode merge graph: %w", err)
	}
	return b, nil
}
