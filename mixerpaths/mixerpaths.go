// SPDX-License-Identifier: EPL-2.0

// Package mixerpaths applies the physical card's mixer routing described by
// a mixer paths file:
//
//	<mixer>
//	  <ctl name="WSA RX0 MUX" value="AIF1_PB"/>
//	  <path name="speaker">
//	    <ctl name="SpkrLeft COMP Switch" value="1"/>
//	  </path>
//	</mixer>
//
// Controls outside any path are defaults, applied when the Controller is
// created and again, in reverse order, on Reset.
package mixerpaths

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
)

// Setting is one ctl element.
type Setting struct {
	Name  string
	Value string
}

// Path is a named group of settings.
type Path struct {
	Name     string
	Settings []Setting
}

type Paths struct {
	Defaults []Setting
	Paths    []Path
}

// Lookup returns the first path called name.
func (p *Paths) Lookup(name string) (Path, bool) {
	for _, path := range p.Paths {
		if path.Name == name {
			return path, true
		}
	}

	return Path{}, false
}

func Load(path string) (*Paths, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return p, nil
}

// Parse reads defaults and paths from r. A path element nested in another
// includes the settings of the earlier path it names. ctl elements without
// both name and value are ignored.
func Parse(r io.Reader) (*Paths, error) {
	p := &Paths{}
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) { return input, nil }

	// index into p.Paths receiving ctl elements, per open path element
	var open []int

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return p, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "path":
				name, _ := attr(el.Attr, "name")
				if len(open) > 0 {
					// a path inside a path includes an earlier one
					i := open[len(open)-1]
					if inc, ok := p.Lookup(name); ok {
						p.Paths[i].Settings = append(p.Paths[i].Settings, inc.Settings...)
					}
					open = append(open, i)
					continue
				}

				p.Paths = append(p.Paths, Path{Name: name})
				open = append(open, len(p.Paths)-1)
			case "ctl":
				name, okName := attr(el.Attr, "name")
				value, okValue := attr(el.Attr, "value")
				if !okName || !okValue {
					continue
				}

				s := Setting{Name: name, Value: value}
				if len(open) == 0 {
					p.Defaults = append(p.Defaults, s)
				} else {
					i := open[len(open)-1]
					p.Paths[i].Settings = append(p.Paths[i].Settings, s)
				}
			}
		case xml.EndElement:
			if el.Name.Local == "path" && len(open) > 0 {
				open = open[:len(open)-1]
			}
		}
	}
}

func attr(attrs []xml.Attr, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}

	return "", false
}
