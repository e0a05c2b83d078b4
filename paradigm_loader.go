package nlg

import (
	"bufio"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
)

// loadParadigms reads the cell descriptions and the model file from fsys.
func loadParadigms(fsys fs.FS, labelsPath, modelsPath string) (*Paradigms, error) {
	p := &Paradigms{
		labels:     []string{""}, // index 0 unused; 1-based
		models:     make(map[string]*Model),
		byEnding:   make(map[string]*Model),
		desinences: make(map[string][]*Desinence),
		variables:  make(map[string]string),
	}
	if err := p.loadLabels(fsys, labelsPath); err != nil {
		return nil, err
	}
	if err := p.loadModels(fsys, modelsPath); err != nil {
		return nil, err
	}
	if p.models["aimer"] == nil {
		return nil, fmt.Errorf("%s: root model %q missing", modelsPath, "aimer")
	}
	return p, nil
}

// loadLabels reads cell descriptions into p.labels (1-based).
// Format: "n:description", stops at "! --- " separator.
func (p *Paradigms) loadLabels(fsys fs.FS, path string) error {
	f, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "! --- ") {
			break
		}
		if strings.HasPrefix(line, "!") {
			continue
		}
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		p.labels = append(p.labels, line[idx+1:])
	}
	return sc.Err()
}

// loadModels reads the model file and populates p.models.
// Also registers all desinences into p.desinences.
func (p *Paradigms) loadModels(fsys fs.FS, path string) error {
	f, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var block []string
	sc := bufio.NewScanner(f)
	atEOF := false

	flushBlock := func() {
		if len(block) == 0 {
			return
		}
		m := p.parseModel(block)
		if m != nil {
			p.models[m.Name] = m
			for _, e := range m.Endings {
				p.byEnding[e] = m
			}
		}
		block = block[:0]
	}

	for !atEOF {
		var line string
		if sc.Scan() {
			line = stripComment(sc.Text())
		} else {
			atEOF = true
		}

		if line == "" && !atEOF {
			continue
		}

		// Variables: $name=value
		if strings.HasPrefix(line, "$") {
			idx := strings.Index(line, "=")
			if idx > 0 {
				p.variables[line[:idx]] = line[idx+1:]
			}
			continue
		}

		// A new "modele:" line (or EOF) closes the accumulated block.
		parts := strings.SplitN(line, ":", 2)
		if (parts[0] == "modele" || atEOF) && len(block) > 0 {
			flushBlock()
		}

		if !atEOF {
			block = append(block, line)
		}
	}
	return sc.Err()
}

// stripComment trims a line and drops a trailing "!" comment.
func stripComment(line string) string {
	if idx := strings.Index(line, "!"); idx >= 0 {
		line = line[:idx]
	}
	return strings.TrimSpace(line)
}

// parseModel builds a Model from a block of lines of the model file.
func (p *Paradigms) parseModel(lines []string) *Model {
	m := newModel("")

	for _, line := range lines {
		line = p.substituteVars(line)

		eclats := strings.Split(strings.TrimSpace(line), ":")

		switch eclats[0] {
		case "modele":
			if len(eclats) > 1 {
				m.Name = eclats[1]
			}
		case "pere":
			if len(eclats) > 1 {
				m.parent = p.models[eclats[1]]
			}
		case "fin":
			if len(eclats) > 1 {
				for _, e := range strings.Split(eclats[1], ";") {
					if e = strings.TrimSpace(e); e != "" {
						m.Endings = append(m.Endings, e)
					}
				}
			}
		case "des":
			if len(eclats) < 4 {
				continue
			}
			cellNums := ListI(eclats[1])
			radNum, _ := strconv.Atoi(eclats[2])
			desStrs := strings.Split(eclats[3], ";")

			for i, cn := range cellNums {
				var desStr string
				if i < len(desStrs) {
					desStr = desStrs[i]
				} else if len(desStrs) > 0 {
					desStr = desStrs[len(desStrs)-1]
				}
				// Each desStr may be comma-separated (several endings for one cell)
				for _, g := range strings.Split(desStr, ",") {
					if g == "-" {
						g = ""
					}
					d := &Desinence{
						Ending:  g,
						CellNum: cn,
						RadNum:  radNum,
						Model:   m,
					}
					m.Desinences[cn] = append(m.Desinences[cn], d)
					p.addDesinence(d)
				}
			}

		case "R":
			if len(eclats) < 3 {
				continue
			}
			rn, _ := strconv.Atoi(eclats[1])
			m.RadicalRules[rn] = eclats[2]

		case "abs":
			if len(eclats) > 1 {
				m.Absents = ListI(eclats[1])
			}

		case "abs+":
			if len(eclats) > 1 {
				m.Absents = append(m.Absents, ListI(eclats[1])...)
			}
		}
	}

	// Inherit from parent (for cells not already in child and not absent)
	if m.parent != nil {
		for cn, parentDes := range m.parent.Desinences {
			if m.hasDesinence(cn) {
				continue
			}
			for _, dp := range parentDes {
				if m.isAbsent(dp.CellNum) {
					continue
				}
				dc := cloneDesinence(dp, m)
				m.Desinences[cn] = append(m.Desinences[cn], dc)
				p.addDesinence(dc)
			}
		}

		// Inherit radical rules
		for _, d := range m.AllDesinences() {
			if _, ok := m.RadicalRules[d.RadNum]; !ok {
				if rule, ok := m.parent.RadicalRules[d.RadNum]; ok {
					m.RadicalRules[d.RadNum] = rule
				}
			}
		}
	}

	if m.Name == "" {
		return nil
	}
	return m
}

// substituteVars replaces $variable references in line with their stored values.
func (p *Paradigms) substituteVars(line string) string {
	for strings.Contains(line, "$") {
		d := strings.Index(line, "$")
		f := strings.Index(line[d:], ";")
		var varName string
		if f < 0 {
			varName = line[d:]
		} else {
			varName = line[d : d+f]
		}
		val, ok := p.variables[varName]
		if !ok {
			break // unknown variable, avoid infinite loop
		}
		line = strings.Replace(line, varName, val, 1)
	}
	return line
}

// stemFromBase computes a radical from an infinitive and a radical rule
// string ("K", "n" or "n,suffix").
func stemFromBase(base, rule string) string {
	if rule == "K" {
		return base
	}
	ruleParts := strings.SplitN(rule, ",", 2)
	oter, _ := strconv.Atoi(ruleParts[0])
	runes := []rune(base)
	if oter > len(runes) {
		oter = len(runes)
	}
	stem := string(runes[:len(runes)-oter])
	if len(ruleParts) > 1 && ruleParts[1] != "0" {
		stem += ruleParts[1]
	}
	return stem
}
