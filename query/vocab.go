// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package query

import (
	"sort"

	"github.com/aracbul/aracbul/core"
)

// Vocabulary holds the brand and city terms recognized for a catalog
// snapshot. Terms are lowercased with Turkish casing and sorted for
// deterministic extraction order.
type Vocabulary struct {
	Brands []string
	Cities []string
}

// turkishProvinces is the fixed fallback city vocabulary, so a query
// naming a city the catalog happens not to carry is still recognized as
// a city constraint instead of silently matching everything.
var turkishProvinces = []string{
	"adana", "adıyaman", "afyonkarahisar", "ağrı", "aksaray", "amasya",
	"ankara", "antalya", "ardahan", "artvin", "aydın", "balıkesir",
	"bartın", "batman", "bayburt", "bilecik", "bingöl", "bitlis", "bolu",
	"burdur", "bursa", "çanakkale", "çankırı", "çorum", "denizli",
	"diyarbakır", "düzce", "edirne", "elazığ", "erzincan", "erzurum",
	"eskişehir", "gaziantep", "giresun", "gümüşhane", "hakkari", "hatay",
	"ığdır", "ısparta", "istanbul", "izmir", "kahramanmaraş", "karabük",
	"karaman", "kars", "kastamonu", "kayseri", "kilis", "kırıkkale",
	"kırklareli", "kırşehir", "kocaeli", "konya", "kütahya", "malatya",
	"manisa", "mardin", "mersin", "muğla", "muş", "nevşehir", "niğde",
	"ordu", "osmaniye", "rize", "sakarya", "samsun", "siirt", "sinop",
	"sivas", "şanlıurfa", "şırnak", "tekirdağ", "tokat", "trabzon",
	"tunceli", "uşak", "van", "yalova", "yozgat", "zonguldak",
}

// BuildVocabulary collects the distinct brands and cities of the catalog.
// Cities are unioned with the fixed province list; brands come from the
// catalog alone. Empty fields are skipped, so a sparse catalog yields a
// sparse vocabulary rather than matching on the empty string.
func BuildVocabulary(catalog []*core.Listing) *Vocabulary {
	brands := make(map[string]struct{})
	cities := make(map[string]struct{})

	for _, p := range turkishProvinces {
		cities[p] = struct{}{}
	}

	for _, listing := range catalog {
		if listing == nil {
			continue
		}
		if b := lowerTurkish(listing.Brand); b != "" {
			brands[b] = struct{}{}
		}
		if c := lowerTurkish(listing.City); c != "" {
			cities[c] = struct{}{}
		}
	}

	return &Vocabulary{
		Brands: sortedKeys(brands),
		Cities: sortedKeys(cities),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
