// Package molecule hands out a random "molecule of the month" together with
// the names of its course data files.
package molecule

import (
	"fmt"
	"io"
	"maps"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/fatih/color"
)

// BaseURL is the prefix shared by every molecule fact page.
const BaseURL = "http://www.chm.bris.ac.uk/motm"

// pages maps each molecule to its fact page path under BaseURL.
var pages = map[string]string{
	"Riboflavin":    "/vitaminB2/vitaminb2h.htm",
	"Quinine":       "/quinine/quinineh.htm",
	"Dexamethasone": "/dexamethasone/dexamethasoneh.htm",
	"Lycopene":      "/lycopene/lycopeneh.htm",
	"Melatonin":     "/DMT/dmth.htm",
	"BromoLSD":      "/DMT/dmth.htm",
	"Testosterone":  "/testosterone/testosteroneh.htm",
	"Fluorescein":   "/rose-bengal/rose-bengalh.htm",
	"Cannabinol":    "/cannabidiol/cannabidiolh.htm",
	"Estradiol":     "/estradiol/estradiolh.htm",
	"Strychnine":    "/strychnine/strychnineh.html",
}

var (
	sortedNames = slices.Sorted(maps.Keys(pages))
	// byLower maps a lower-cased name to its catalogue spelling.
	byLower = func() map[string]string {
		m := make(map[string]string, len(pages))
		for name := range pages {
			m[strings.ToLower(name)] = name
		}
		return m
	}()
)

// Molecule is one catalogue entry.
type Molecule struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// StructureFile is the relative path of the molecule's .mol structure file.
func (m Molecule) StructureFile() string {
	return "data/" + m.Name + ".mol"
}

// MassSpecFile is the relative path of the molecule's mass spectrum data.
func (m Molecule) MassSpecFile() string {
	return "data/MS_" + m.Name + ".txt"
}

// Names returns every molecule name in sorted order. The slice is a copy.
func Names() []string {
	return slices.Clone(sortedNames)
}

// Pick chooses a molecule uniformly at random using r.
func Pick(r *rand.Rand) Molecule {
	name := sortedNames[r.IntN(len(sortedNames))]
	return Molecule{Name: name, URL: BaseURL + pages[name]}
}

// Lookup finds a molecule by name, ignoring case.
func Lookup(name string) (Molecule, bool) {
	if page, ok := pages[name]; ok {
		return Molecule{Name: name, URL: BaseURL + page}, true
	}
	if n, ok := byLower[strings.ToLower(name)]; ok {
		return Molecule{Name: n, URL: BaseURL + pages[n]}, true
	}
	return Molecule{}, false
}

// Describe writes the fact sheet for m. The headline is bold cyan when
// colour is true.
func Describe(w io.Writer, m Molecule, colour bool) error {
	title := fmt.Sprintf("Your molecule is %s !", m.Name)
	if colour {
		c := color.New(color.FgCyan, color.Bold)
		c.EnableColor()
		title = c.Sprint(title)
	}
	_, err := fmt.Fprintf(w,
		"%s\nThe structure file for your molecule %s is named %s\nThe MassSpec data file for your molecule %s is named %s\nInteresting facts about %s are on %s\n",
		title, m.Name, m.StructureFile(), m.Name, m.MassSpecFile(), m.Name, m.URL)
	return err
}
