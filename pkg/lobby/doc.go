// Package lobby reads Minecraft client logs and detects Bedwars team rosters.
//
// This package allows you to:
//   - Read the chat lines at the end of a client log file
//   - Find the most recent roster announcement among those lines
//   - Watch a log file for new roster announcements as they are written
//
// # Basic Usage
//
// To detect the current roster once:
//
//	lines, err := lobby.ReadChatLines(path, lobby.WithTailLines(40))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	roster := lobby.Detect(lines)
//	if roster.Empty() {
//	    fmt.Println("no roster found")
//	    return
//	}
//	for _, name := range roster.Names {
//	    fmt.Println(lobby.SanitizeName(name))
//	}
//
// To follow the log and react to each new roster:
//
//	w, err := lobby.NewWatcher(path)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	rosters, errs := w.Watch(ctx)
//	for {
//	    select {
//	    case roster, ok := <-rosters:
//	        if !ok {
//	            return
//	        }
//	        fmt.Println(strings.Join(roster.Names, ", "))
//	    case err, ok := <-errs:
//	        if !ok {
//	            return
//	        }
//	        log.Printf("error: %v", err)
//	    }
//	}
//
// # Detection Heuristic
//
// A chat line is a roster announcement when its content (the text after
// the "[CHAT] " marker) holds at least two commas and does not start with
// the "BedWars ?" system prefix. Ordinary chat that happens to contain two
// commas is indistinguishable from a roster and will be reported as one.
package lobby
