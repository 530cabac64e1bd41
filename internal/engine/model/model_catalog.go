// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

// catalog is the fixed vocabulary of action names per size class.
var catalog = map[ActionType][]string{
	ActionSmall: {
		"Ammunation", "Auditório", "Barbearia", "Bebidas", "Comedy",
		"Estábulo", "Loja de Penhores Rota 68", "Lojinha", "Madeireira", "Mequi",
		"Mergulhador", "Observatório", "Planet", "Prefeitura", "Yellow Jack",
	},
	ActionMedium: {
		"Açougue", "Banco Fleeca", "Departamento Policial Rota 68", "Galinheiro", "Joalheria",
	},
	ActionLarge: {
		"Banco Central", "Banco de Paleto Bay", "Nióbio", "Porta-Aviões",
	},
}

// CatalogEntry is one size class of the vocabulary in display form.
type CatalogEntry struct {
	Type  string   `json:"type"`
	Names []string `json:"names"`
}

// Catalog returns the vocabulary for every size class, smallest first.
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, 0, len(catalog))
	for _, t := range ActionTypes() {
		names := make([]string, len(catalog[t]))
		copy(names, catalog[t])
		out = append(out, CatalogEntry{Type: t.Display(), Names: names})
	}
	return out
}

// CatalogName resolves name against the vocabulary of t, ignoring case and
// accents, and returns the catalog spelling.
func CatalogName(t ActionType, name string) (string, bool) {
	want := canonical(name)
	for _, n := range catalog[t] {
		if canonical(n) == want {
			return n, true
		}
	}
	return "", false
}
