// Command ist ejecuta el motor de traslados entre tiendas sobre planillas locales.
package main

func main() {
	Execute()
}
