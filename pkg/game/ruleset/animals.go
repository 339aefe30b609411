package ruleset

// cellAnimals labels the board cells, one animal per cell.
var cellAnimals = []string{
	"Aardvark", "Alpaca", "Antelope", "Armadillo", "Badger", "Bat", "Bear", "Bison",
	"Camel", "Capybara", "Cheetah", "Chimpanzee", "Cobra", "Coyote", "Crocodile", "Dingo",
	"Eagle", "Echidna", "Elephant", "Falcon", "Ferret", "Flamingo", "Fox", "Gazelle",
	"Gecko", "Gibbon", "Giraffe", "Gorilla", "Hedgehog", "Heron", "Hippopotamus", "Hyena",
	"Ibex", "Iguana", "Impala", "Jackal", "Jaguar", "Kangaroo", "Koala", "Lemur",
	"Leopard", "Lion", "Llama", "Lynx", "Manatee", "Meerkat", "Moose", "Ocelot",
	"Okapi", "Orangutan", "Ostrich", "Otter", "Pelican", "Penguin", "Porcupine", "Raccoon",
	"Red Panda", "Rhinoceros", "Sloth", "Tiger", "Zebra",
}

// qAnimals labels the doors in front of each q column.
var qAnimals = []string{
	"Peacock", "Parrot", "Owl", "Vulture", "Stork", "Swan", "Kiwi", "Macaw", "Hornbill",
}

// rAnimals labels the doors in front of each r row.
var rAnimals = []string{
	"Tortoise", "Python", "Chameleon", "Salamander", "Axolotl", "Komodo Dragon", "Frog", "Toad", "Newt",
}
