package catalog

type indexedEntry struct {
	Entry
	norm string
}

func newEntries(list []Entry) []indexedEntry {
	out := make([]indexedEntry, len(list))
	for i, e := range list {
		out[i] = indexedEntry{Entry: e, norm: Normalize(e.Name)}
	}
	return out
}

// The built-in product list. Small on purpose: it only needs to cover the
// staples a Brazilian grocery run actually hits; everything else falls back
// to the keyword heuristics.
var entries = newEntries([]Entry{
	{Name: "Banana", Category: "Hortifruti", Icon: "🍌", KcalPer100: 89, Curiosity: "A banana é tecnicamente uma baga."},
	{Name: "Maçã", Category: "Hortifruti", Icon: "🍎", KcalPer100: 52, Curiosity: "Existem mais de 7.500 variedades de maçã."},
	{Name: "Limão", Category: "Hortifruti", Icon: "🍋", KcalPer100: 29},
	{Name: "Laranja", Category: "Hortifruti", Icon: "🍊", KcalPer100: 47},
	{Name: "Tomate", Category: "Hortifruti", Icon: "🍅", KcalPer100: 18, Curiosity: "Botanicamente o tomate é uma fruta."},
	{Name: "Cebola", Category: "Hortifruti", Icon: "🧅", KcalPer100: 40},
	{Name: "Alho", Category: "Temperos", Icon: "🧄", KcalPer100: 149},
	{Name: "Batata", Category: "Hortifruti", Icon: "🥔", KcalPer100: 77},
	{Name: "Cenoura", Category: "Hortifruti", Icon: "🥕", KcalPer100: 41},
	{Name: "Alface", Category: "Hortifruti", Icon: "🥬", KcalPer100: 15},
	{Name: "Abacate", Category: "Hortifruti", Icon: "🥑", KcalPer100: 160},
	{Name: "Leite", Category: "Laticínios", Icon: "🥛", KcalPer100: 61},
	{Name: "Queijo Mussarela", Category: "Laticínios", Icon: "🧀", KcalPer100: 280},
	{Name: "Queijo Minas", Category: "Laticínios", Icon: "🧀", KcalPer100: 264},
	{Name: "Iogurte", Category: "Laticínios", Icon: "🥛", KcalPer100: 59},
	{Name: "Manteiga", Category: "Laticínios", Icon: "🧈", KcalPer100: 717},
	{Name: "Ovos", Category: "Mercearia", Icon: "🥚", KcalPer100: 155, Curiosity: "A cor da casca não muda o valor nutricional."},
	{Name: "Arroz", Category: "Mercearia", Icon: "🍚", KcalPer100: 130, Curiosity: "O arroz alimenta mais da metade da humanidade."},
	{Name: "Feijão", Category: "Mercearia", Icon: "🫘", KcalPer100: 127},
	{Name: "Macarrão", Category: "Mercearia", Icon: "🍝", KcalPer100: 131},
	{Name: "Farinha de Trigo", Category: "Mercearia", Icon: "🌾", KcalPer100: 364},
	{Name: "Açúcar", Category: "Mercearia", Icon: "🧂", KcalPer100: 387},
	{Name: "Sal", Category: "Temperos", Icon: "🧂"},
	{Name: "Café", Category: "Mercearia", Icon: "☕", KcalPer100: 2, Curiosity: "O Brasil é o maior produtor de café do mundo."},
	{Name: "Óleo de Soja", Category: "Mercearia", Icon: "🫗", KcalPer100: 884},
	{Name: "Azeite", Category: "Mercearia", Icon: "🫒", KcalPer100: 884},
	{Name: "Pão Francês", Category: "Padaria", Icon: "🥖", KcalPer100: 300},
	{Name: "Pão de Forma", Category: "Padaria", Icon: "🍞", KcalPer100: 253},
	{Name: "Frango", Category: "Carnes", Icon: "🍗", KcalPer100: 239},
	{Name: "Carne Moída", Category: "Carnes", Icon: "🥩", KcalPer100: 250},
	{Name: "Picanha", Category: "Carnes", Icon: "🥩", KcalPer100: 287},
	{Name: "Linguiça", Category: "Carnes", Icon: "🌭", KcalPer100: 301},
	{Name: "Peixe", Category: "Carnes", Icon: "🐟", KcalPer100: 206},
	{Name: "Refrigerante", Category: "Bebidas", Icon: "🥤", KcalPer100: 42},
	{Name: "Suco de Laranja", Category: "Bebidas", Icon: "🧃", KcalPer100: 45},
	{Name: "Cerveja", Category: "Bebidas", Icon: "🍺", KcalPer100: 43},
	{Name: "Água Mineral", Category: "Bebidas", Icon: "💧"},
	{Name: "Sabonete", Category: "Higiene", Icon: "🧼"},
	{Name: "Shampoo", Category: "Higiene", Icon: "🧴"},
	{Name: "Papel Higiênico", Category: "Higiene", Icon: "🧻"},
	{Name: "Creme Dental", Category: "Higiene", Icon: "🪥"},
	{Name: "Detergente", Category: "Limpeza", Icon: "🧽"},
	{Name: "Sabão em Pó", Category: "Limpeza", Icon: "🧺"},
	{Name: "Água Sanitária", Category: "Limpeza", Icon: "🧴"},
	{Name: "Ração para Cães", Category: "Pet", Icon: "🐾"},
	{Name: "Pizza Congelada", Category: "Congelados", Icon: "🍕", KcalPer100: 266},
	{Name: "Sorvete", Category: "Congelados", Icon: "🍨", KcalPer100: 207},
	{Name: "Milho Enlatado", Category: "Enlatados", Icon: "🥫", KcalPer100: 86},
	{Name: "Atum", Category: "Enlatados", Icon: "🥫", KcalPer100: 132},
	{Name: "Orégano", Category: "Temperos", Icon: "🌿"},
	{Name: "Pilha", Category: "Bazar", Icon: "🔋"},
})
