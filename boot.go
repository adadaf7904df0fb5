package weft

// bootSource is spec.md §4.6's bootstrap program: every structured
// control-flow word built, "always be compiling", from the raw
// branch/0branch/falsyBranch/here/-stackFrame primitives and the
// definition words (`:`, `;`, `immediate`, `postpone`). It is evaluated
// once per Machine, grounded on the teacher's thirdSource bootstrap.
const bootSource = `
: ahead                here 0 , ;
: <back                here -stackFrame , ;
: if     immediate     postpone falsyBranch ahead ;
: endif  immediate     here over -stackFrame swap ! ;
: else   immediate     postpone branch ahead swap postpone endif ;
: begin  immediate     here ;
: until  immediate     postpone falsyBranch <back ;
: again  immediate     postpone branch <back ;
: repeat immediate     postpone again postpone endif ;
`
