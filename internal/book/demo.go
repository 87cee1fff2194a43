package book

// demoContacts is the sample data offered by the -demo flag.
var demoContacts = []struct {
	name, phone, birthday string
}{
	{"Nick", "8976237632", "25 November 2003"},
	{"Lara", "98265619187", "13 January 1988"},
	{"Volodymyr", "992775151116", "29 February 2020"},
	{"Hiba", "9111117689236", "03 February 1984"},
	{"Zayn", "118873254235", "10 March 1985"},
	{"Alex", "22766427682", "16 April 1983"},
	{"Adrien", "3872365238187", "21 May 1989"},
	{"Abdel", "427127422276", "23 June 1994"},
	{"Serhiy", "52255366655", "13 July 1977"},
	{"Karo", "6632666666288", "25 August 1978"},
	{"Egle", "7177771333277", "28 September 1982"},
	{"Dan", "81213885239588", "30 October 1984"},
	{"Deepak", "991191240204", "31 December 1981"},
}

// Demo returns a book filled with sample contacts.
func Demo() (*AddressBook, error) {
	b := New()
	for _, c := range demoContacts {
		name, err := NewName(c.name)
		if err != nil {
			return nil, err
		}
		phone, err := NewPhone(c.phone)
		if err != nil {
			return nil, err
		}
		bday, err := ParseBirthday(c.birthday)
		if err != nil {
			return nil, err
		}
		if err := b.Add(NewRecord(name, []Phone{phone}, &bday)); err != nil {
			return nil, err
		}
	}
	return b, nil
}
