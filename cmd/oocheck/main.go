package main

func main() {
	if err := Execute(); err != nil {
		exitWithError("%v", err)
	}
}
